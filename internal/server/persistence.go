package server

import (
	"encoding/json"
	"errors"

	"gincana/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Write-through persistence. The in-memory store stays authoritative for
// request handling; every mutation mirrors into Postgres when a connection
// is configured, and is a no-op otherwise.

func (s *Server) persistUser(user *User) error {
	if s.db == nil || user.DBID != 0 {
		return nil
	}
	record := db.User{
		Name:         user.Name,
		Email:        user.Email,
		Team:         user.Team,
		Class:        user.Class,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.User
			if lookupErr := s.db.Where("email = ?", user.Email).First(&existing).Error; lookupErr == nil {
				user.DBID = existing.ID
				return nil
			}
		}
		return err
	}
	user.DBID = record.ID
	return nil
}

func (s *Server) persistUserUpdate(user *User) error {
	if s.db == nil || user.DBID == 0 {
		return nil
	}
	updates := map[string]any{
		"name":          user.Name,
		"team":          user.Team,
		"class":         user.Class,
		"password_hash": user.PasswordHash,
		"is_admin":      user.IsAdmin,
	}
	return s.db.Model(&db.User{}).Where("id = ?", user.DBID).Updates(updates).Error
}

func (s *Server) deleteUserRecord(dbID uint) error {
	if s.db == nil || dbID == 0 {
		return nil
	}
	return s.db.Delete(&db.User{}, dbID).Error
}

func (s *Server) persistCategory(cat *Category) error {
	if s.db == nil || cat.DBID != 0 {
		return nil
	}
	record := db.Category{
		Name:        cat.Name,
		Description: cat.Description,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	cat.DBID = record.ID
	return nil
}

func (s *Server) persistCategoryUpdate(cat *Category) error {
	if s.db == nil || cat.DBID == 0 {
		return nil
	}
	updates := map[string]any{
		"name":        cat.Name,
		"description": cat.Description,
	}
	return s.db.Model(&db.Category{}).Where("id = ?", cat.DBID).Updates(updates).Error
}

func (s *Server) deleteCategoryRecord(dbID uint) error {
	if s.db == nil || dbID == 0 {
		return nil
	}
	return s.db.Delete(&db.Category{}, dbID).Error
}

func (s *Server) persistQuestion(question *Question, categoryDBID uint) error {
	if s.db == nil || question.DBID != 0 {
		return nil
	}
	options, err := json.Marshal(question.Options)
	if err != nil {
		return err
	}
	record := db.Question{
		CategoryID: categoryDBID,
		Text:       question.Text,
		Weight:     question.Weight,
		Options:    datatypes.JSON(options),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	question.DBID = record.ID
	return nil
}

func (s *Server) persistQuestionUpdate(question *Question, categoryDBID uint) error {
	if s.db == nil || question.DBID == 0 {
		return nil
	}
	options, err := json.Marshal(question.Options)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"category_id": categoryDBID,
		"text":        question.Text,
		"weight":      question.Weight,
		"options":     datatypes.JSON(options),
	}
	return s.db.Model(&db.Question{}).Where("id = ?", question.DBID).Updates(updates).Error
}

func (s *Server) deleteQuestionRecord(dbID uint) error {
	if s.db == nil || dbID == 0 {
		return nil
	}
	return s.db.Delete(&db.Question{}, dbID).Error
}

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	record := db.Room{
		Name:            room.Name,
		Capacity:        room.Capacity,
		Status:          room.Status,
		QuestionSeconds: room.QuestionSeconds,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	return nil
}

func (s *Server) persistRoomState(room *Room) error {
	if s.db == nil || room.DBID == 0 {
		return nil
	}
	ids, err := json.Marshal(room.QuestionIDs)
	if err != nil {
		return err
	}
	results, err := json.Marshal(room.Results)
	if err != nil {
		return err
	}
	questionDBID := uint(0)
	if question, ok := s.store.GetQuestion(room.QuestionID); ok {
		questionDBID = question.DBID
	}
	updates := map[string]any{
		"name":             room.Name,
		"capacity":         room.Capacity,
		"status":           room.Status,
		"question_index":   room.QuestionIndex,
		"question_id":      questionDBID,
		"question_seconds": room.QuestionSeconds,
		"question_ids":     datatypes.JSON(ids),
		"results":          datatypes.JSON(results),
	}
	return s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Updates(updates).Error
}

func (s *Server) deleteRoomRecord(dbID uint) error {
	if s.db == nil || dbID == 0 {
		return nil
	}
	return s.db.Delete(&db.Room{}, dbID).Error
}

func (s *Server) persistAttempt(attempt *Attempt, user *User, room *Room) error {
	if s.db == nil || attempt.DBID != 0 {
		return nil
	}
	if user == nil || user.DBID == 0 {
		return errors.New("user not persisted")
	}
	ids, err := json.Marshal(attempt.QuestionIDs)
	if err != nil {
		return err
	}
	record := db.Attempt{
		UserID:        user.DBID,
		QuestionCount: attempt.QuestionCount,
		QuestionIDs:   datatypes.JSON(ids),
	}
	if room != nil && room.DBID != 0 {
		roomID := room.DBID
		record.RoomID = &roomID
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) && record.RoomID != nil {
			var existing db.Attempt
			if lookupErr := s.db.Where("user_id = ? AND room_id = ?", user.DBID, *record.RoomID).First(&existing).Error; lookupErr == nil {
				attempt.DBID = existing.ID
				return nil
			}
		}
		return err
	}
	attempt.DBID = record.ID
	return nil
}

func (s *Server) persistAnswer(answer *Answer) error {
	if s.db == nil {
		return nil
	}
	attempt, ok := s.store.GetAttempt(answer.AttemptID)
	if !ok || attempt.DBID == 0 {
		return errors.New("attempt not persisted")
	}
	user, ok := s.store.GetUser(answer.UserID)
	if !ok || user.DBID == 0 {
		return errors.New("user not persisted")
	}
	questionDBID := uint(0)
	if question, found := s.store.GetQuestion(answer.QuestionID); found {
		questionDBID = question.DBID
	}
	record := db.Answer{
		AttemptID:      attempt.DBID,
		UserID:         user.DBID,
		QuestionID:     questionDBID,
		QuestionNumber: answer.QuestionNumber,
		Text:           answer.Text,
		Correct:        answer.Correct,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"question_id", "text", "correct", "updated_at"}),
	}).Create(&record).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
