package models

import "time"

// Audit carries the bookkeeping columns shared by every entity.
type Audit struct {
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime" json:"modified_at"`
	ModifiedBy *string   `gorm:"column:modified_by" json:"modified_by,omitempty"`
}
