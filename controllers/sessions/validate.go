package sessions

import (
	"errors"
	"time"

	model "ssb-connect-backend/models/sessions"
)

// Ограничения на создание сессии
const (
	MinTitleLen       = 3
	MinDescriptionLen = 10
	MinDuration       = 15
	MaxDuration       = 180
)

var (
	ErrTitleTooShort       = errors.New("title must be at least 3 characters")
	ErrDescriptionTooShort = errors.New("description must be at least 10 characters")
	ErrMentorRequired      = errors.New("mentorId is required")
	ErrBadSessionType      = errors.New("sessionType must be one of: mock_interview, gto_coaching, psych_review, general")
	ErrBadDuration         = errors.New("durationMinutes must be between 15 and 180")
	ErrScheduledInPast     = errors.New("scheduledAt must not be in the past")
)

// BookingInput — запрос на создание сессии
type BookingInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	MentorID        uint      `json:"mentorId"`
	SessionType     string    `json:"sessionType"`
	DurationMinutes int       `json:"durationMinutes"`
	ScheduledAt     time.Time `json:"scheduledAt"`
}

// ValidateBookingInput проверяет поля запроса. Существование наставника
// проверяется отдельно, на уровне обработчика.
func ValidateBookingInput(now time.Time, in BookingInput) error {
	if len(in.Title) < MinTitleLen {
		return ErrTitleTooShort
	}
	if len(in.Description) < MinDescriptionLen {
		return ErrDescriptionTooShort
	}
	if in.MentorID == 0 {
		return ErrMentorRequired
	}
	if !model.ValidType(in.SessionType) {
		return ErrBadSessionType
	}
	if in.DurationMinutes < MinDuration || in.DurationMinutes > MaxDuration {
		return ErrBadDuration
	}
	if in.ScheduledAt.IsZero() || in.ScheduledAt.Before(now) {
		return ErrScheduledInPast
	}
	return nil
}
