package db

import (
	"time"

	"gorm.io/datatypes"
)

// Options holds the four answer options as a JSON list of
// {"text": ..., "correct": ...} objects, exactly one marked correct.
type Question struct {
	ID         uint           `gorm:"primaryKey"`
	CategoryID uint           `gorm:"index;not null"`
	Text       string         `gorm:"size:500;not null"`
	Weight     int            `gorm:"not null;default:1"`
	Options    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}
