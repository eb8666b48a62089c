package content

import (
	"time"

	"gorm.io/gorm"

	"ssb-connect-backend/models/users"
)

type BlogPost struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Tags      string     `json:"tags"` // через запятую: "ppdt,lecturette"
	AuthorID  uint       `gorm:"index;not null" json:"authorId"`
	Author    users.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Published bool       `gorm:"default:false" json:"published"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
