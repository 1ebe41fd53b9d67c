package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID              uint           `gorm:"primaryKey"`
	Name            string         `gorm:"size:64;not null"`
	Capacity        int            `gorm:"not null;default:0"`
	Status          string         `gorm:"size:32;not null"`
	QuestionIndex   int            `gorm:"not null;default:0"`
	QuestionID      uint           `gorm:"not null;default:0"`
	QuestionSeconds int            `gorm:"not null;default:30"`
	QuestionIDs     datatypes.JSON `gorm:"type:jsonb"`
	Results         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	Attempts        []Attempt
}
