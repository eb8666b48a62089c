package sessions

import (
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ssb-connect-backend/config"
	"ssb-connect-backend/metrics"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/availability"
)

// ReconcileMentorAvailability убирает из списка наставника слот,
// потребленный бронированием на scheduledAt. Строка пользователя блокируется
// на время read-modify-write, чтобы параллельные бронирования не теряли
// обновления друг друга.
func ReconcileMentorAvailability(mentorID uint, scheduledAt time.Time) (availability.ReconcileResult, error) {
	var res availability.ReconcileResult

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var mentor users.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mentor, mentorID).Error; err != nil {
			return err
		}

		res = availability.Reconcile(mentor.Availability, scheduledAt)
		if len(res.Removed) == 0 {
			return nil
		}

		return tx.Model(&mentor).Update("availability", pq.StringArray(res.Kept)).Error
	})
	if err != nil {
		return res, err
	}

	config.Logger.Info("availability reconciled",
		zap.Uint("mentor_id", mentorID),
		zap.Time("scheduled_at", scheduledAt),
		zap.Int("before", res.Before),
		zap.Int("after", res.After),
		zap.Strings("removed", res.Removed))

	metrics.AddSlotsRemoved(len(res.Removed))
	return res, nil
}
