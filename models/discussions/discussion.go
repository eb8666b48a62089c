package discussions

import (
	"time"

	"gorm.io/gorm"

	"ssb-connect-backend/models/users"
)

type LiveDiscussion struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Topic           string       `gorm:"not null" json:"topic"`
	Description     string       `gorm:"type:text" json:"description"`
	HostID          uint         `gorm:"index;not null" json:"hostId"`
	Host            users.User   `gorm:"foreignKey:HostID" json:"host,omitempty"`
	StartTime       time.Time    `gorm:"index;not null" json:"startTime"`
	DurationMinutes int          `gorm:"not null;default:60" json:"durationMinutes"`
	Capacity        int          `gorm:"not null" json:"capacity"`
	RoomCode        string       `gorm:"uniqueIndex;not null" json:"roomCode"`
	MeetLink        string       `json:"-"` // выдается только через access-эндпоинт
	Attendees       []users.User `gorm:"many2many:discussion_attendees" json:"attendees,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAttendee — записан ли пользователь в обсуждение
func (d *LiveDiscussion) IsAttendee(userID uint) bool {
	for _, a := range d.Attendees {
		if a.ID == userID {
			return true
		}
	}
	return false
}
