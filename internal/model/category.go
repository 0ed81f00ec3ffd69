package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups forms. A nil UserID marks a public, admin-owned category.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      *uint          `json:"user_id,omitempty" gorm:"index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Public reports whether the category is visible to every user.
func (c *Category) Public() bool {
	return c.UserID == nil
}
