package server

import (
	"log"
	"net/http"
)

type categoryPayload struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=280"`
}

type questionPayload struct {
	CategoryID int            `json:"category_id" validate:"required,gt=0"`
	Text       string         `json:"text" validate:"required"`
	Weight     int            `json:"weight" validate:"required,gt=0"`
	Options    []AnswerOption `json:"options" validate:"required,len=4"`
}

type roomPayload struct {
	Name            string `json:"name" validate:"required,max=64"`
	Capacity        int    `json:"capacity" validate:"gte=0"`
	QuestionSeconds int    `json:"question_seconds" validate:"gte=0"`
}

type userUpdatePayload struct {
	Name    string `json:"name" validate:"omitempty,max=64"`
	Team    string `json:"team" validate:"max=64"`
	Class   string `json:"class" validate:"max=64"`
	IsAdmin *bool  `json:"is_admin"`
}

func (s *Server) handleAdminSubroutes(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resource, id, hasID, ok := parseAdminPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch resource {
	case "categories":
		s.dispatchAdminCategories(w, r, id, hasID)
	case "questions":
		s.dispatchAdminQuestions(w, r, id, hasID)
	case "rooms":
		s.dispatchAdminRooms(w, r, id, hasID)
	case "users":
		s.dispatchAdminUsers(w, r, id, hasID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) dispatchAdminCategories(w http.ResponseWriter, r *http.Request, id int, hasID bool) {
	switch {
	case r.Method == http.MethodGet && !hasID:
		s.handleListCategories(w, r)
	case r.Method == http.MethodPost && !hasID:
		s.handleCreateCategory(w, r)
	case r.Method == http.MethodPut && hasID:
		s.handleUpdateCategory(w, r, id)
	case r.Method == http.MethodDelete && hasID:
		s.handleDeleteCategory(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := s.store.CreateCategory(normalizeText(req.Name), normalizeText(req.Description))
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistCategory(cat); err != nil {
		log.Printf("category persist failed category_id=%d error=%v", cat.ID, err)
	}
	log.Printf("category created category_id=%d", cat.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"category_id": cat.ID})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, id int) {
	var req categoryPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := s.store.UpdateCategory(id, func(cat *Category) error {
		cat.Name = normalizeText(req.Name)
		cat.Description = normalizeText(req.Description)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.persistCategoryUpdate(cat); err != nil {
		log.Printf("category persist failed category_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"category_id": cat.ID})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, id int) {
	cat, ok := s.store.GetCategory(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	dbID := cat.DBID
	if err := s.store.DeleteCategory(id); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.deleteCategoryRecord(dbID); err != nil {
		log.Printf("category delete persist failed category_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) dispatchAdminQuestions(w http.ResponseWriter, r *http.Request, id int, hasID bool) {
	switch {
	case r.Method == http.MethodGet && !hasID:
		s.handleListQuestions(w, r)
	case r.Method == http.MethodPost && !hasID:
		s.handleCreateQuestion(w, r)
	case r.Method == http.MethodPut && hasID:
		s.handleUpdateQuestion(w, r, id)
	case r.Method == http.MethodDelete && hasID:
		s.handleDeleteQuestion(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions := s.store.ListQuestions()
	payload := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		payload = append(payload, map[string]any{
			"question_id": q.ID,
			"category_id": q.CategoryID,
			"text":        q.Text,
			"weight":      q.Weight,
			"options":     q.Options,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": payload})
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, options, err := validateQuestion(req.Text, req.Weight, req.Options)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, ok := s.store.GetCategory(req.CategoryID)
	if !ok {
		writeError(w, http.StatusBadRequest, "category not found")
		return
	}
	question, err := s.store.CreateQuestion(req.CategoryID, text, req.Weight, options)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistQuestion(question, cat.DBID); err != nil {
		log.Printf("question persist failed question_id=%d error=%v", question.ID, err)
	}
	log.Printf("question created question_id=%d category_id=%d", question.ID, req.CategoryID)
	writeJSON(w, http.StatusCreated, map[string]any{"question_id": question.ID})
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request, id int) {
	var req questionPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text, options, err := validateQuestion(req.Text, req.Weight, req.Options)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, ok := s.store.GetCategory(req.CategoryID)
	if !ok {
		writeError(w, http.StatusBadRequest, "category not found")
		return
	}
	question, err := s.store.UpdateQuestion(id, func(q *Question) error {
		q.CategoryID = req.CategoryID
		q.Text = text
		q.Weight = req.Weight
		q.Options = options
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.persistQuestionUpdate(question, cat.DBID); err != nil {
		log.Printf("question persist failed question_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"question_id": question.ID})
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request, id int) {
	question, ok := s.store.GetQuestion(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	dbID := question.DBID
	if err := s.store.DeleteQuestion(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.deleteQuestionRecord(dbID); err != nil {
		log.Printf("question delete persist failed question_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) dispatchAdminRooms(w http.ResponseWriter, r *http.Request, id int, hasID bool) {
	switch {
	case r.Method == http.MethodGet && !hasID:
		s.handleListRooms(w, r)
	case r.Method == http.MethodPost && !hasID:
		s.handleCreateRoom(w, r)
	case r.Method == http.MethodPut && hasID:
		s.handleUpdateRoom(w, r, id)
	case r.Method == http.MethodDelete && hasID:
		s.handleDeleteRoom(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	seconds := req.QuestionSeconds
	if seconds <= 0 {
		seconds = s.cfg.QuestionSeconds
	}
	room := s.store.CreateRoom(normalizeText(req.Name), req.Capacity, seconds)
	if err := s.persistRoom(room); err != nil {
		log.Printf("room persist failed room_id=%d error=%v", room.ID, err)
	}
	log.Printf("room created room_id=%d", room.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"room_id": room.ID})
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request, id int) {
	var req roomPayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := s.store.UpdateRoom(id, func(room *Room) error {
		if room.Status == statusInGame {
			return errRoomInGame
		}
		room.Name = normalizeText(req.Name)
		room.Capacity = req.Capacity
		if req.QuestionSeconds > 0 {
			room.QuestionSeconds = req.QuestionSeconds
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistRoomState(room); err != nil {
		log.Printf("room persist failed room_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"room_id": room.ID})
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request, id int) {
	room, ok := s.store.GetRoom(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	dbID := room.DBID
	if err := s.store.DeleteRoom(id); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.cancelQuestionTimer(id)
	if err := s.deleteRoomRecord(dbID); err != nil {
		log.Printf("room delete persist failed room_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) dispatchAdminUsers(w http.ResponseWriter, r *http.Request, id int, hasID bool) {
	switch {
	case r.Method == http.MethodGet && !hasID:
		s.handleListUsers(w, r)
	case r.Method == http.MethodPut && hasID:
		s.handleUpdateUser(w, r, id)
	case r.Method == http.MethodDelete && hasID:
		s.handleDeleteUser(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := s.store.ListUsers()
	payload := make([]map[string]any, 0, len(users))
	for i := range users {
		payload = append(payload, userPayload(&users[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": payload})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, id int) {
	var req userUpdatePayload
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := s.store.UpdateUser(id, func(user *User) error {
		if name := normalizeText(req.Name); name != "" {
			user.Name = name
		}
		user.Team = normalizeText(req.Team)
		user.Class = normalizeText(req.Class)
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.persistUserUpdate(user); err != nil {
		log.Printf("user persist failed user_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, userPayload(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, id int) {
	user, ok := s.store.GetUser(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	dbID := user.DBID
	if err := s.store.DeleteUser(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.deleteUserRecord(dbID); err != nil {
		log.Printf("user delete persist failed user_id=%d error=%v", id, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
