package server

import (
	"net/http"
	"strconv"
	"strings"

	"gincana/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	flash := s.sessions.PopFlash(w, r)
	templ.Handler(web.Home(flash)).ServeHTTP(w, r)
}

func (s *Server) handlePlayView(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(w, r); !ok {
		s.sessions.SetFlash(w, r, "Log in to play.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.Play()).ServeHTTP(w, r)
}

func (s *Server) handleRoomView(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/rooms/"), "/")
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	roomID, err := strconv.Atoi(rest)
	if err != nil || roomID <= 0 {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.currentUser(w, r); !ok {
		s.sessions.SetFlash(w, r, "Log in to play.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if _, ok := s.store.GetRoom(roomID); !ok {
		http.Redirect(w, r, "/play", http.StatusFound)
		return
	}
	templ.Handler(web.Room(roomID)).ServeHTTP(w, r)
}

func (s *Server) handleAdminView(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok || !user.IsAdmin {
		s.sessions.SetFlash(w, r, "Admin access required.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.Admin()).ServeHTTP(w, r)
}
