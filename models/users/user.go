package users

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"ssb-connect-backend/config"
)

// Роли пользователей
const (
	RoleMentee = "mentee"
	RoleMentor = "mentor"
	RoleAdmin  = "admin"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"unique;not null"`
	Password   string `json:"-" gorm:"not null"`
	Role       string `json:"role" gorm:"not null;default:mentee"`
	Bio        string `json:"bio" gorm:"type:text"`
	City       string `json:"city"`
	ExamTarget string `json:"examTarget"` // NDA, CDS, AFCAT и т.д.

	// Поля наставника
	Specialization string  `json:"specialization"`
	Experience     string  `json:"experience" gorm:"type:text"`
	PricePerHour   float64 `json:"pricePerHour"`
	Rating         float32 `json:"rating" gorm:"default:0"`
	ReviewCount    int     `json:"reviewCount" gorm:"default:0"`

	// Окна доступности наставника: либо "2025-01-01T10:00:00Z",
	// либо диапазон "2025-01-01T10:00:00Z|2025-01-01T11:00:00Z"
	Availability pq.StringArray `json:"availability" gorm:"type:text[]"`

	Provider  string `json:"provider" gorm:"default:local"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsMentor — является ли пользователь наставником
func (u *User) IsMentor() bool {
	return u.Role == RoleMentor
}

func GetUserByID(userID interface{}) (*User, error) {
	var user User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}
