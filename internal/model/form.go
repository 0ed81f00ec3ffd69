package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Form is the top-level questionnaire. Order holds Process IDs as a plain
// ID list; entries may reference deleted or foreign processes and every
// consumer must skip entries that fail to resolve.
type Form struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"not null"`
	CategoryID *uint          `json:"category_id,omitempty"`
	Category   *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Order      pq.Int64Array  `json:"order" gorm:"type:bigint[]"`
	Linear     bool           `json:"linear" gorm:"default:false"`
	IsPrivate  bool           `json:"is_private" gorm:"default:false"`
	Password   string         `json:"-"`
	URL        string         `json:"url,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
