package db

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:64;not null"`
	Email        string    `gorm:"size:120;uniqueIndex;not null"`
	Team         string    `gorm:"size:64"`
	Class        string    `gorm:"size:64"`
	PasswordHash []byte    `gorm:"type:bytea;not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Attempts     []Attempt
	Answers      []Answer
}
