package server

import (
	"errors"
	"time"
)

// Transitions are validated here, never trusted from clients:
// open -> in-game (start), in-game -> in-game (next question),
// in-game -> finished (past the last question).

func startRoomState(room *Room, ids []int, playerCount, minPlayers int, at time.Time) error {
	if room.Status == statusFinished {
		return errors.New("room is finished")
	}
	if room.Status != statusOpen {
		return errors.New("room already started")
	}
	if playerCount < minPlayers {
		return errors.New("not enough players")
	}
	if len(ids) == 0 {
		return errors.New("no questions available")
	}
	room.Status = statusInGame
	room.QuestionIDs = append([]int(nil), ids...)
	room.QuestionIndex = 1
	room.QuestionID = ids[0]
	room.QuestionDeadline = at.Add(time.Duration(room.QuestionSeconds) * time.Second)
	return nil
}

// advanceRoomState moves to the next question, or reports true when the room
// just moved past the last one. The expected index guards against a stale
// timer racing a newer advance.
func advanceRoomState(room *Room, expectedIndex int, at time.Time) (bool, error) {
	if room.Status != statusInGame {
		return false, errors.New("room is not in game")
	}
	if room.QuestionIndex != expectedIndex {
		return false, errors.New("question already advanced")
	}
	if room.QuestionIndex >= len(room.QuestionIDs) {
		room.Status = statusFinished
		room.QuestionID = 0
		room.QuestionDeadline = time.Time{}
		return true, nil
	}
	room.QuestionIndex++
	room.QuestionID = room.QuestionIDs[room.QuestionIndex-1]
	room.QuestionDeadline = at.Add(time.Duration(room.QuestionSeconds) * time.Second)
	return false, nil
}

func remainingSeconds(room *Room, now time.Time) int {
	if room.Status != statusInGame || room.QuestionDeadline.IsZero() {
		return 0
	}
	left := int(room.QuestionDeadline.Sub(now).Round(time.Second) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}
