package db

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:64;uniqueIndex;not null"`
	Description string    `gorm:"size:280"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Questions   []Question
}
