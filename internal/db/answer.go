package db

import "time"

// One row per (attempt, question number); a resubmission updates the
// existing row through an ON CONFLICT upsert.
type Answer struct {
	ID             uint      `gorm:"primaryKey"`
	AttemptID      uint      `gorm:"index;not null;uniqueIndex:idx_answers_attempt_number"`
	UserID         uint      `gorm:"index;not null"`
	QuestionID     uint      `gorm:"index;not null"`
	QuestionNumber int       `gorm:"not null;uniqueIndex:idx_answers_attempt_number"`
	Text           string    `gorm:"size:280;not null"`
	Correct        bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}
