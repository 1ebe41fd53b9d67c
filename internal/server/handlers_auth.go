package server

import (
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Team     string `json:"team"`
	Class    string `json:"class"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}
	user, err := s.store.CreateUser(name, email, normalizeText(req.Team), normalizeText(req.Class), hash, false)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistUser(user); err != nil {
		log.Printf("register persist failed user_id=%d error=%v", user.ID, err)
	}
	s.sessions.SetUser(w, r, user.ID)
	log.Printf("user registered user_id=%d", user.ID)
	writeJSON(w, http.StatusCreated, userPayload(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := s.store.FindUserByEmail(email)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	s.sessions.SetUser(w, r, user.ID)
	log.Printf("user logged in user_id=%d", user.ID)
	writeJSON(w, http.StatusOK, userPayload(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w, r)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Current)); err != nil {
		writeError(w, http.StatusUnauthorized, "current password is wrong")
		return
	}
	if err := validatePassword(req.New); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	updated, err := s.store.UpdateUser(user.ID, func(u *User) error {
		u.PasswordHash = hash
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.persistUserUpdate(updated); err != nil {
		log.Printf("password persist failed user_id=%d error=%v", user.ID, err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, userPayload(user))
}

func userPayload(user *User) map[string]any {
	return map[string]any{
		"user_id":  user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"team":     user.Team,
		"class":    user.Class,
		"is_admin": user.IsAdmin,
	}
}
