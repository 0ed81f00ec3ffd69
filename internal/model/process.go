package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Process groups questions inside a form. Order holds Question IDs.
// Linear traversal is owned by the Form, not the Process.
type Process struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	Name       string         `json:"name"`
	CategoryID *uint          `json:"category_id,omitempty"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Order      pq.Int64Array  `json:"order" gorm:"type:bigint[]"`
	IsPrivate  bool           `json:"is_private" gorm:"default:false"`
	Password   string         `json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
