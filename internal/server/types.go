package server

import "time"

const (
	statusOpen     = "open"
	statusInGame   = "in-game"
	statusFinished = "finished"
)

const (
	sampleModeRandom     = "random"
	sampleModeConfigured = "configured"
)

type User struct {
	ID           int
	DBID         uint
	Name         string
	Email        string
	Team         string
	Class        string
	PasswordHash []byte
	IsAdmin      bool
}

type Category struct {
	ID          int
	DBID        uint
	Name        string
	Description string
}

type AnswerOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID         int
	DBID       uint
	CategoryID int
	Text       string
	Weight     int
	Options    []AnswerOption
}

// QuestionDeadline is authoritative for the countdown; snapshots derive the
// remaining seconds from it rather than decrementing a stored value.
type Room struct {
	ID               int
	DBID             uint
	Name             string
	Capacity         int
	Status           string
	QuestionIndex    int
	QuestionID       int
	QuestionSeconds  int
	QuestionDeadline time.Time
	QuestionIDs      []int
	Results          []RoomResult
}

type RoomResult struct {
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

type Attempt struct {
	ID            int
	DBID          uint
	UserID        int
	RoomID        int
	QuestionCount int
	QuestionIDs   []int
	CreatedAt     time.Time
}

type Answer struct {
	DBID           uint
	AttemptID      int
	UserID         int
	QuestionID     int
	QuestionNumber int
	Text           string
	Correct        bool
}

type RoomSummary struct {
	ID       int
	Name     string
	Capacity int
	Status   string
	Players  int
}
