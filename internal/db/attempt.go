package db

import (
	"time"

	"gorm.io/datatypes"
)

// RoomID is nil for solo attempts. The (room, user) unique index makes a
// room join idempotent at the storage layer.
type Attempt struct {
	ID            uint           `gorm:"primaryKey"`
	UserID        uint           `gorm:"index;not null;uniqueIndex:idx_attempts_room_user"`
	RoomID        *uint          `gorm:"index;uniqueIndex:idx_attempts_room_user"`
	QuestionCount int            `gorm:"not null;default:0"`
	QuestionIDs   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	Answers       []Answer
}
