package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ssb_connect",
			Name:      "bookings_created_total",
			Help:      "Count of sessions booked by type.",
		},
		[]string{"session_type"},
	)

	slotsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ssb_connect",
			Name:      "availability_slots_removed_total",
			Help:      "Count of availability slots consumed by reconciliation.",
		},
	)

	discussionJoins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ssb_connect",
			Name:      "discussion_joins_total",
			Help:      "Count of discussion join attempts by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, slotsRemoved, discussionJoins)
	})
}

func IncBookingCreated(sessionType string) {
	bookingsCreated.WithLabelValues(sessionType).Inc()
}

func AddSlotsRemoved(n int) {
	slotsRemoved.Add(float64(n))
}

func IncDiscussionJoin(result string) {
	discussionJoins.WithLabelValues(result).Inc()
}
