package model

import (
	"time"

	"gorm.io/datatypes"
)

// Report is the per-form aggregation checkpoint. Cursor is the highest
// Answer ID already folded into Data; the aggregator only reads answers
// with a strictly greater ID, so replays never double count.
type Report struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FormID    uint           `json:"form_id" gorm:"not null;uniqueIndex"`
	Cursor    uint           `json:"cursor" gorm:"not null;default:0"`
	Data      datatypes.JSON `json:"data" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AdminReport is a snapshot of platform-wide totals generated by the
// background job.
type AdminReport struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Data      datatypes.JSON `json:"data" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}
