package sessions

import (
	"time"

	"gorm.io/gorm"

	"ssb-connect-backend/models/users"
)

// Статусы сессии
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Типы сессий
const (
	TypeMockInterview = "mock_interview"
	TypeGTOCoaching   = "gto_coaching"
	TypePsychReview   = "psych_review"
	TypeGeneral       = "general"
)

type Session struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	MentorID        uint       `gorm:"index;not null" json:"mentorId"`
	Mentor          users.User `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	MenteeID        uint       `gorm:"index;not null" json:"menteeId"`
	Mentee          users.User `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	SessionType     string     `gorm:"not null" json:"sessionType"`
	ScheduledAt     time.Time  `gorm:"index;not null" json:"scheduledAt"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	Status          string     `gorm:"not null;default:scheduled" json:"status"`
	MeetNotes       string     `gorm:"type:text" json:"meetNotes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// EndsAt — момент окончания сессии
func (s *Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// allowedTransitions — допустимые переходы статусов
var allowedTransitions = map[string][]string{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition проверяет, допустим ли переход из from в to
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidType проверяет тип сессии
func ValidType(t string) bool {
	switch t {
	case TypeMockInterview, TypeGTOCoaching, TypePsychReview, TypeGeneral:
		return true
	}
	return false
}
