package server

import (
	"errors"
	"log"
	"time"
)

// startRoom runs the admin "start game" transition: sample the question set,
// publish the first question, arm the countdown. The status check inside
// UpdateRoom makes concurrent starts lose cleanly instead of last-write-wins.
func (s *Server) startRoom(roomID int) (*Room, error) {
	playerCount := s.store.RoomPlayerCount(roomID)
	if playerCount < s.cfg.MinRoomPlayers {
		return nil, errors.New("not enough players")
	}
	sampled := sampleRandom(s.store.ListQuestions(), s.cfg.RoomQuestionCount)
	ids := questionIDs(sampled)
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		return startRoomState(room, ids, playerCount, s.cfg.MinRoomPlayers, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	if err := s.persistRoomState(room); err != nil {
		log.Printf("room start persist failed room_id=%d error=%v", room.ID, err)
	}
	log.Printf("room started room_id=%d questions=%d players=%d", room.ID, len(ids), playerCount)
	s.scheduleQuestionTimer(room)
	s.broadcastRoomUpdate(room)
	return room, nil
}

// advanceRoom moves a room past expectedIndex, either because the countdown
// fired or because every joined player has answered.
func (s *Server) advanceRoom(roomID, expectedIndex int, reason string) {
	finished := false
	room, err := s.store.UpdateRoom(roomID, func(room *Room) error {
		done, err := advanceRoomState(room, expectedIndex, time.Now().UTC())
		if err != nil {
			return err
		}
		finished = done
		return nil
	})
	if err != nil {
		return
	}
	if finished {
		results := s.collectRoomResults(roomID)
		room, err = s.store.UpdateRoom(roomID, func(room *Room) error {
			room.Results = results
			return nil
		})
		if err != nil {
			return
		}
		s.cancelQuestionTimer(roomID)
		log.Printf("room finished room_id=%d reason=%s", roomID, reason)
	} else {
		s.scheduleQuestionTimer(room)
		log.Printf("room advanced room_id=%d index=%d reason=%s", roomID, room.QuestionIndex, reason)
	}
	if err := s.persistRoomState(room); err != nil {
		log.Printf("room advance persist failed room_id=%d error=%v", roomID, err)
	}
	s.broadcastRoomUpdate(room)
}

// tryAdvanceEarly advances as soon as the whole room has answered the
// current question.
func (s *Server) tryAdvanceEarly(roomID int) {
	room, ok := s.store.GetRoom(roomID)
	if !ok || room.Status != statusInGame {
		return
	}
	index := room.QuestionIndex
	if s.store.CountRoomAnswers(roomID, index) < s.store.RoomPlayerCount(roomID) {
		return
	}
	s.advanceRoom(roomID, index, "all answered")
}

func (s *Server) collectRoomResults(roomID int) []RoomResult {
	results := make([]RoomResult, 0)
	for _, attempt := range s.store.RoomAttempts(roomID) {
		correct, total := 0, 0
		for _, answer := range s.store.AttemptAnswers(attempt.ID) {
			total++
			if answer.Correct {
				correct++
			}
		}
		name := ""
		if user, ok := s.store.GetUser(attempt.UserID); ok {
			name = user.Name
		}
		results = append(results, RoomResult{
			UserID:  attempt.UserID,
			Name:    name,
			Correct: correct,
			Total:   total,
		})
	}
	return results
}

func (s *Server) scheduleQuestionTimer(room *Room) {
	duration := time.Until(room.QuestionDeadline)
	if duration <= 0 {
		duration = time.Duration(room.QuestionSeconds) * time.Second
	}
	roomID, index := room.ID, room.QuestionIndex
	s.timersMu.Lock()
	if existing, ok := s.timers[roomID]; ok {
		existing.Stop()
	}
	s.timers[roomID] = time.AfterFunc(duration, func() {
		s.advanceRoom(roomID, index, "timeout")
	})
	s.timersMu.Unlock()
}

func (s *Server) cancelQuestionTimer(roomID int) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[roomID]; ok {
		timer.Stop()
		delete(s.timers, roomID)
	}
}
