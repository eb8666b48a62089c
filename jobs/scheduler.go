package jobs

import (
	"time"

	"github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ssb-connect-backend/config"
	model "ssb-connect-backend/models/sessions"
	"ssb-connect-backend/models/users"
	"ssb-connect-backend/services/availability"
)

// Сессия помечается no_show, если через сутки после окончания
// наставник так и не перевел ее из scheduled
const noShowGrace = 24 * time.Hour

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.pruneExpiredAvailability); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/10 * * * *", s.markOverdueSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// pruneExpiredAvailability вычищает у наставников окна, целиком ушедшие
// в прошлое: их уже нельзя забронировать
func (s *Scheduler) pruneExpiredAvailability() {
	now := time.Now()

	var mentors []users.User
	if err := config.DB.Where("role = ? AND availability IS NOT NULL", users.RoleMentor).Find(&mentors).Error; err != nil {
		config.Logger.Error("prune: failed to load mentors", zap.Error(err))
		return
	}

	pruned := 0
	for _, mentor := range mentors {
		kept := make([]string, 0, len(mentor.Availability))
		for _, raw := range mentor.Availability {
			slot, err := availability.ParseSlot(raw)
			if err != nil {
				// мусорные записи чистка не трогает
				kept = append(kept, raw)
				continue
			}
			if slot.End.After(now) {
				kept = append(kept, raw)
			}
		}

		if len(kept) == len(mentor.Availability) {
			continue
		}

		removed := len(mentor.Availability) - len(kept)
		if err := config.DB.Model(&mentor).Update("availability", pq.StringArray(kept)).Error; err != nil {
			config.Logger.Error("prune: failed to update mentor",
				zap.Uint("mentor_id", mentor.ID), zap.Error(err))
			continue
		}
		pruned += removed
	}

	if pruned > 0 {
		config.Logger.Info("pruned expired availability windows", zap.Int("count", pruned))
	}
}

// markOverdueSessions переводит давно прошедшие scheduled-сессии в no_show
func (s *Scheduler) markOverdueSessions() {
	cutoff := time.Now().Add(-noShowGrace)

	result := config.DB.Model(&model.Session{}).
		Where("status = ? AND scheduled_at + make_interval(mins => duration_minutes) < ?",
			model.StatusScheduled, cutoff).
		Update("status", model.StatusNoShow)

	if result.Error != nil {
		config.Logger.Error("failed to mark overdue sessions", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		config.Logger.Info("marked overdue sessions as no_show", zap.Int64("count", result.RowsAffected))
	}
}
