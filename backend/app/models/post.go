package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post.UserName is copied from the author when the post is created and is not
// updated if the author later changes their userName.
type Post struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;index;not null"`
	UserName    string    `gorm:"size:64;not null"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"index;not null"`
	UpdatedAt   time.Time
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return nil
}
