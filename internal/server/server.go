package server

import (
	"net/http"
	"sync"
	"time"

	"gincana/internal/config"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Server struct {
	store        *Store
	db           *gorm.DB
	ws           *wsHub
	cfg          config.Config
	sessions     *sessionStore
	rankingGroup singleflight.Group
	timersMu     sync.Mutex
	timers       map[int]*time.Timer
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:    NewStore(),
		db:       conn,
		ws:       newWSHub(),
		cfg:      cfg,
		sessions: newSessionStore(conn),
		timers:   make(map[int]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /play", s.handlePlayView)
	mux.HandleFunc("GET /rooms/", s.handleRoomView)
	mux.HandleFunc("GET /admin", s.handleAdminView)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("POST /api/password", s.handleChangePassword)
	mux.HandleFunc("GET /api/me", s.handleMe)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("GET /api/ranking", s.handleRanking)
	mux.HandleFunc("POST /api/quizzes", s.handleStartQuiz)
	mux.HandleFunc("GET /api/quizzes/", s.handleQuizSubroutes)
	mux.HandleFunc("POST /api/quizzes/", s.handleQuizSubroutes)
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("GET /api/admin/", s.handleAdminSubroutes)
	mux.HandleFunc("POST /api/admin/", s.handleAdminSubroutes)
	mux.HandleFunc("PUT /api/admin/", s.handleAdminSubroutes)
	mux.HandleFunc("DELETE /api/admin/", s.handleAdminSubroutes)
	mux.HandleFunc("GET /ws/rooms/", s.handleRoomWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// currentUser resolves the session to a player, server-side.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*User, bool) {
	userID := s.sessions.UserID(w, r)
	if userID == 0 {
		return nil, false
	}
	return s.store.GetUser(userID)
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*User, bool) {
	user, ok := s.currentUser(w, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return nil, false
	}
	return user, true
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (*User, bool) {
	user, ok := s.currentUser(w, r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return nil, false
	}
	if !user.IsAdmin {
		writeError(w, http.StatusForbidden, "admin access required")
		return nil, false
	}
	return user, true
}
