package server

import (
	"log"
	"net/http"
)

type roomAnswerRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rooms": roomSummaryPayload(s.store.ListRoomSummaries()),
	})
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	roomID, action, ok := parseResourcePath("/api/rooms/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case r.Method == http.MethodGet && action == "":
		s.handleGetRoom(w, r, roomID)
	case r.Method == http.MethodPost && action == "join":
		s.handleJoinRoom(w, r, roomID)
	case r.Method == http.MethodPost && action == "start":
		s.handleStartRoom(w, r, roomID)
	case r.Method == http.MethodPost && action == "answers":
		s.handleRoomAnswer(w, r, roomID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request, roomID int) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	room, ok := s.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.roomSnapshot(room))
}

// handleJoinRoom is idempotent: a second join from the same player returns
// the existing attempt instead of an error, so the client can land in the
// lobby either way.
func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, roomID int) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	room, ok := s.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	attempt, alreadyJoined, err := s.store.JoinRoom(roomID, user.ID)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if !alreadyJoined {
		if err := s.persistAttempt(attempt, user, room); err != nil {
			log.Printf("join persist failed room_id=%d user_id=%d error=%v", roomID, user.ID, err)
		}
		log.Printf("room joined room_id=%d user_id=%d", roomID, user.ID)
		s.broadcastRoomUpdate(room)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"attempt_id":     attempt.ID,
		"already_joined": alreadyJoined,
		"room":           s.roomSnapshot(room),
	})
}

func (s *Server) handleStartRoom(w http.ResponseWriter, r *http.Request, roomID int) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if _, ok := s.store.GetRoom(roomID); !ok {
		http.NotFound(w, r)
		return
	}
	room, err := s.startRoom(roomID)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.roomSnapshot(room))
}

func (s *Server) handleRoomAnswer(w http.ResponseWriter, r *http.Request, roomID int) {
	user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	room, ok := s.store.GetRoom(roomID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if room.Status != statusInGame {
		writeError(w, http.StatusConflict, "room is not in game")
		return
	}
	var attempt *Attempt
	for _, candidate := range s.store.RoomAttempts(roomID) {
		if candidate.UserID == user.ID {
			joined := candidate
			attempt = &joined
			break
		}
	}
	if attempt == nil {
		writeError(w, http.StatusForbidden, "join the room before answering")
		return
	}
	var req roomAnswerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	questionNumber := room.QuestionIndex
	answer, err := s.recordAnswer(attempt, questionNumber, room.QuestionID, req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"question_number": answer.QuestionNumber,
		"correct":         answer.Correct,
	})
	s.tryAdvanceEarly(roomID)
}

func roomSummaryPayload(summaries []RoomSummary) []map[string]any {
	payload := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		payload = append(payload, map[string]any{
			"room_id":  summary.ID,
			"name":     summary.Name,
			"capacity": summary.Capacity,
			"status":   summary.Status,
			"players":  summary.Players,
		})
	}
	return payload
}
