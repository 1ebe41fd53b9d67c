package server

import (
	"encoding/json"
	"log"
	"time"

	"gincana/internal/db"
)

// LoadFromDB seeds the in-memory store from Postgres at boot. Memory ids
// mirror the database ids so the two never need a translation table. Rooms
// that were mid-game get a fresh deadline for their current question and
// their countdown rearmed.
func (s *Server) LoadFromDB() error {
	if s.db == nil {
		return nil
	}

	var users []db.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return err
	}
	var categories []db.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return err
	}
	var questions []db.Question
	if err := s.db.Order("id").Find(&questions).Error; err != nil {
		return err
	}
	var rooms []db.Room
	if err := s.db.Order("id").Find(&rooms).Error; err != nil {
		return err
	}
	var attempts []db.Attempt
	if err := s.db.Order("id").Find(&attempts).Error; err != nil {
		return err
	}
	var answers []db.Answer
	if err := s.db.Order("id").Find(&answers).Error; err != nil {
		return err
	}

	s.store.mu.Lock()
	for i := range users {
		record := &users[i]
		s.store.users[int(record.ID)] = &User{
			ID:           int(record.ID),
			DBID:         record.ID,
			Name:         record.Name,
			Email:        record.Email,
			Team:         record.Team,
			Class:        record.Class,
			PasswordHash: record.PasswordHash,
			IsAdmin:      record.IsAdmin,
		}
		bump(&s.store.nextUserID, int(record.ID))
	}
	for i := range categories {
		record := &categories[i]
		s.store.categories[int(record.ID)] = &Category{
			ID:          int(record.ID),
			DBID:        record.ID,
			Name:        record.Name,
			Description: record.Description,
		}
		bump(&s.store.nextCatID, int(record.ID))
	}
	for i := range questions {
		record := &questions[i]
		var options []AnswerOption
		if err := json.Unmarshal(record.Options, &options); err != nil {
			log.Printf("skipping question with bad options question_id=%d error=%v", record.ID, err)
			continue
		}
		s.store.questions[int(record.ID)] = &Question{
			ID:         int(record.ID),
			DBID:       record.ID,
			CategoryID: int(record.CategoryID),
			Text:       record.Text,
			Weight:     record.Weight,
			Options:    options,
		}
		bump(&s.store.nextQID, int(record.ID))
	}
	resumed := make([]*Room, 0)
	for i := range rooms {
		record := &rooms[i]
		room := &Room{
			ID:              int(record.ID),
			DBID:            record.ID,
			Name:            record.Name,
			Capacity:        record.Capacity,
			Status:          record.Status,
			QuestionIndex:   record.QuestionIndex,
			QuestionID:      int(record.QuestionID),
			QuestionSeconds: record.QuestionSeconds,
		}
		if len(record.QuestionIDs) > 0 {
			_ = json.Unmarshal(record.QuestionIDs, &room.QuestionIDs)
		}
		if len(record.Results) > 0 {
			_ = json.Unmarshal(record.Results, &room.Results)
		}
		if room.Status == statusInGame {
			room.QuestionDeadline = time.Now().UTC().Add(time.Duration(room.QuestionSeconds) * time.Second)
			resumed = append(resumed, room)
		}
		s.store.rooms[room.ID] = room
		bump(&s.store.nextRoomID, room.ID)
	}
	for i := range attempts {
		record := &attempts[i]
		attempt := &Attempt{
			ID:            int(record.ID),
			DBID:          record.ID,
			UserID:        int(record.UserID),
			QuestionCount: record.QuestionCount,
			CreatedAt:     record.CreatedAt,
		}
		if record.RoomID != nil {
			attempt.RoomID = int(*record.RoomID)
		}
		if len(record.QuestionIDs) > 0 {
			_ = json.Unmarshal(record.QuestionIDs, &attempt.QuestionIDs)
		}
		s.store.attempts[attempt.ID] = attempt
		bump(&s.store.nextAttemptID, attempt.ID)
	}
	for i := range answers {
		record := &answers[i]
		s.store.answers = append(s.store.answers, Answer{
			DBID:           record.ID,
			AttemptID:      int(record.AttemptID),
			UserID:         int(record.UserID),
			QuestionID:     int(record.QuestionID),
			QuestionNumber: record.QuestionNumber,
			Text:           record.Text,
			Correct:        record.Correct,
		})
	}
	s.store.mu.Unlock()

	for _, room := range resumed {
		if err := s.persistRoomState(room); err != nil {
			log.Printf("resume persist failed room_id=%d error=%v", room.ID, err)
		}
		s.scheduleQuestionTimer(room)
		log.Printf("room resumed room_id=%d index=%d", room.ID, room.QuestionIndex)
	}
	log.Printf("store loaded users=%d categories=%d questions=%d rooms=%d attempts=%d answers=%d",
		len(users), len(categories), len(questions), len(rooms), len(attempts), len(answers))
	return nil
}

func bump(counter *int, id int) {
	if id >= *counter {
		*counter = id + 1
	}
}
