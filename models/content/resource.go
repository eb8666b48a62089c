package content

import (
	"time"

	"gorm.io/gorm"

	"ssb-connect-backend/models/users"
)

// Категории учебных материалов
const (
	CategoryOIR        = "oir"
	CategoryPPDT       = "ppdt"
	CategoryPsych      = "psychology"
	CategoryGTO        = "gto"
	CategoryInterview  = "interview"
	CategoryConference = "conference"
)

type Resource struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"index" json:"category"`
	ObjectKey   string     `gorm:"uniqueIndex;not null" json:"-"` // ключ файла в объектном хранилище
	FileName    string     `json:"fileName"`
	Size        int64      `json:"size"`
	AuthorID    uint       `gorm:"index;not null" json:"authorId"`
	Author      users.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
