package server

import (
	"fmt"
	"log"
	"net/http"
)

type startQuizRequest struct {
	Mode   string          `json:"mode"`
	Total  int             `json:"total"`
	Quotas []CategoryQuota `json:"quotas"`
}

type answerRequest struct {
	QuestionNumber int    `json:"question_number"`
	QuestionID     int    `json:"question_id"`
	Text           string `json:"text"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req startQuizRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var selected []Question
	requested := 0
	switch req.Mode {
	case sampleModeRandom:
		requested = req.Total
	case sampleModeConfigured:
		for _, quota := range req.Quotas {
			if quota.Count < 0 {
				writeError(w, http.StatusBadRequest, "quota counts must not be negative")
				return
			}
			requested += quota.Count
		}
	default:
		writeError(w, http.StatusBadRequest, "mode must be random or configured")
		return
	}
	if requested < s.cfg.SoloMinQuestions || requested > s.cfg.SoloMaxQuestions {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("quiz must have between %d and %d questions", s.cfg.SoloMinQuestions, s.cfg.SoloMaxQuestions))
		return
	}

	bank := s.store.ListQuestions()
	if req.Mode == sampleModeRandom {
		selected = sampleRandom(bank, requested)
	} else {
		selected = sampleConfigured(bank, req.Quotas)
	}
	if len(selected) == 0 {
		writeError(w, http.StatusConflict, "no questions available")
		return
	}

	attempt := s.store.CreateSoloAttempt(user.ID, questionIDs(selected))
	if err := s.persistAttempt(attempt, user, nil); err != nil {
		log.Printf("attempt persist failed attempt_id=%d error=%v", attempt.ID, err)
	}
	log.Printf("quiz started user_id=%d attempt_id=%d requested=%d selected=%d", user.ID, attempt.ID, requested, len(selected))

	questions := make([]map[string]any, 0, len(selected))
	for i := range selected {
		questions = append(questions, publicQuestion(&selected[i]))
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"attempt_id": attempt.ID,
		"requested":  requested,
		"selected":   len(selected),
		"questions":  questions,
	})
}

func (s *Server) handleQuizSubroutes(w http.ResponseWriter, r *http.Request) {
	attemptID, action, ok := parseResourcePath("/api/quizzes/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case r.Method == http.MethodPost && action == "answers":
		s.handleQuizAnswer(w, r, attemptID)
	case r.Method == http.MethodGet && action == "results":
		s.handleQuizResults(w, r, attemptID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request, attemptID int) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	attempt, ok := s.store.GetAttempt(attemptID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if attempt.UserID != user.ID {
		writeError(w, http.StatusForbidden, "attempt belongs to another player")
		return
	}
	if attempt.RoomID != 0 {
		writeError(w, http.StatusConflict, "attempt belongs to a room")
		return
	}
	var req answerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionNumber < 1 || req.QuestionNumber > len(attempt.QuestionIDs) {
		writeError(w, http.StatusBadRequest, "question number out of range")
		return
	}
	questionID := attempt.QuestionIDs[req.QuestionNumber-1]
	if req.QuestionID != 0 && req.QuestionID != questionID {
		writeError(w, http.StatusBadRequest, "question does not match the attempt sequence")
		return
	}
	answer, err := s.recordAnswer(attempt, req.QuestionNumber, questionID, req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"question_number": answer.QuestionNumber,
		"correct":         answer.Correct,
	})
}

// recordAnswer derives correctness from the latest submitted text and
// upserts. A failed mirror write is logged, never surfaced as a blocker:
// a storage hiccup must not strand the player mid-quiz.
func (s *Server) recordAnswer(attempt *Attempt, questionNumber, questionID int, text string) (*Answer, error) {
	question, ok := s.store.GetQuestion(questionID)
	if !ok {
		return nil, errQuestionNotFound
	}
	trimmed := normalizeText(text)
	correct := trimmed != "" && trimmed == correctOption(question)
	answer, err := s.store.UpsertAnswer(attempt.ID, questionNumber, questionID, trimmed, correct)
	if err != nil {
		return nil, err
	}
	if err := s.persistAnswer(answer); err != nil {
		log.Printf("answer persist failed attempt_id=%d number=%d error=%v", attempt.ID, questionNumber, err)
	}
	return answer, nil
}

func (s *Server) handleQuizResults(w http.ResponseWriter, r *http.Request, attemptID int) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	attempt, ok := s.store.GetAttempt(attemptID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if attempt.UserID != user.ID && !user.IsAdmin {
		writeError(w, http.StatusForbidden, "attempt belongs to another player")
		return
	}
	correct, total := 0, 0
	for _, answer := range s.store.AttemptAnswers(attemptID) {
		total++
		if answer.Correct {
			correct++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attempt_id": attempt.ID,
		"correct":    correct,
		"total":      total,
		"questions":  attempt.QuestionCount,
	})
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ranking": s.Ranking(),
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.store.ListCategories()
	payload := make([]map[string]any, 0, len(categories))
	questions := s.store.ListQuestions()
	counts := make(map[int]int)
	for _, q := range questions {
		counts[q.CategoryID]++
	}
	for _, cat := range categories {
		payload = append(payload, map[string]any{
			"category_id": cat.ID,
			"name":        cat.Name,
			"description": cat.Description,
			"questions":   counts[cat.ID],
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": payload})
}
