package model

import (
	"time"

	"gorm.io/gorm"
)

type Option struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Text      string         `json:"text" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
