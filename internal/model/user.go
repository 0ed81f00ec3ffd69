package model

import (
	"time"
)

// User is the minimal identity row the engine keys ownership off.
// Authentication itself happens outside this service; requests arrive with
// an already-resolved user ID in the bearer token.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `json:"username" gorm:"not null;uniqueIndex"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
