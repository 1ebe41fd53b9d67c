package server

import (
	"net/http"
	"strconv"
	"testing"

	"gincana/internal/config"
)

func TestAdminRouteMethods(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)

	// Every admin verb must route to the dispatcher alongside the GET /
	// catch-all; a wrong status here means the mux swallowed the request.
	resp := admin.do(t, ts, http.MethodGet, "/api/admin/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = admin.do(t, ts, http.MethodPost, "/api/admin/categories", map[string]string{"name": "History"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	resp = admin.do(t, ts, http.MethodPut, "/api/admin/categories/1", map[string]string{"name": "World History"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/categories/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = admin.do(t, ts, http.MethodPatch, "/api/admin/categories/1", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH: expected status %d, got %d", http.StatusMethodNotAllowed, resp.StatusCode)
	}
}

func TestAdminRequiresAdminSession(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := newTestClient(t).do(t, ts, http.MethodGet, "/api/admin/categories", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	player := newTestClient(t)
	registerPlayer(t, player, ts, "Ada", "ada@example.com")
	resp = player.do(t, ts, http.MethodGet, "/api/admin/categories", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestAdminCategoryCRUD(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)

	resp := admin.do(t, ts, http.MethodPost, "/api/admin/categories", map[string]string{
		"name":        "History",
		"description": "From antiquity onwards",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	catID := int(decodeBody(t, resp)["category_id"].(float64))

	resp = admin.do(t, ts, http.MethodPost, "/api/admin/categories", map[string]string{
		"name": "history",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected duplicate name to conflict, got status %d", resp.StatusCode)
	}

	resp = admin.do(t, ts, http.MethodPut, "/api/admin/categories/"+strconv.Itoa(catID), map[string]string{
		"name": "World History",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/categories/"+strconv.Itoa(catID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if _, ok := srv.store.GetCategory(catID); ok {
		t.Fatalf("expected category to be gone")
	}
}

func TestAdminQuestionCRUD(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)
	resp := admin.do(t, ts, http.MethodPost, "/api/admin/categories", map[string]string{"name": "History"})
	catID := int(decodeBody(t, resp)["category_id"].(float64))

	options := []map[string]any{
		{"text": "1500", "correct": true},
		{"text": "1502"},
		{"text": "1510"},
		{"text": "1492"},
	}
	resp = admin.do(t, ts, http.MethodPost, "/api/admin/questions", map[string]any{
		"category_id": catID,
		"text":        "When did Cabral land in Brazil?",
		"weight":      1,
		"options":     options,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	questionID := int(decodeBody(t, resp)["question_id"].(float64))

	// The category cannot go while a question still references it.
	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/categories/"+strconv.Itoa(catID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = admin.do(t, ts, http.MethodPut, "/api/admin/questions/"+strconv.Itoa(questionID), map[string]any{
		"category_id": catID,
		"text":        "In which year did Cabral land in Brazil?",
		"weight":      2,
		"options":     options,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	question, ok := srv.store.GetQuestion(questionID)
	if !ok || question.Weight != 2 {
		t.Fatalf("expected updated weight 2, got %#v", question)
	}

	resp = admin.do(t, ts, http.MethodGet, "/api/admin/questions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	listed := decodeBody(t, resp)["questions"].([]any)
	if len(listed) != 1 {
		t.Fatalf("expected 1 question, got %d", len(listed))
	}

	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/questions/"+strconv.Itoa(questionID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/categories/"+strconv.Itoa(catID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminQuestionValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)
	resp := admin.do(t, ts, http.MethodPost, "/api/admin/categories", map[string]string{"name": "History"})
	catID := int(decodeBody(t, resp)["category_id"].(float64))

	// Two options marked correct.
	resp = admin.do(t, ts, http.MethodPost, "/api/admin/questions", map[string]any{
		"category_id": catID,
		"text":        "Pick one",
		"weight":      1,
		"options": []map[string]any{
			{"text": "a", "correct": true},
			{"text": "b", "correct": true},
			{"text": "c"},
			{"text": "d"},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Three options instead of four.
	resp = admin.do(t, ts, http.MethodPost, "/api/admin/questions", map[string]any{
		"category_id": catID,
		"text":        "Pick one",
		"weight":      1,
		"options": []map[string]any{
			{"text": "a", "correct": true},
			{"text": "b"},
			{"text": "c"},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Unknown category.
	resp = admin.do(t, ts, http.MethodPost, "/api/admin/questions", map[string]any{
		"category_id": 999,
		"text":        "Pick one",
		"weight":      1,
		"options": []map[string]any{
			{"text": "a", "correct": true},
			{"text": "b"},
			{"text": "c"},
			{"text": "d"},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAdminRoomCRUD(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)

	resp := admin.do(t, ts, http.MethodPost, "/api/admin/rooms", map[string]any{
		"name":     "Sala 1",
		"capacity": 8,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	roomID := int(decodeBody(t, resp)["room_id"].(float64))
	room, ok := srv.store.GetRoom(roomID)
	if !ok || room.QuestionSeconds != srv.cfg.QuestionSeconds {
		t.Fatalf("expected default countdown %d, got %#v", srv.cfg.QuestionSeconds, room)
	}

	resp = admin.do(t, ts, http.MethodPut, "/api/admin/rooms/"+strconv.Itoa(roomID), map[string]any{
		"name":             "Sala Final",
		"capacity":         4,
		"question_seconds": 15,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	room, _ = srv.store.GetRoom(roomID)
	if room.Name != "Sala Final" || room.Capacity != 4 || room.QuestionSeconds != 15 {
		t.Fatalf("unexpected room after update: %#v", room)
	}

	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/rooms/"+strconv.Itoa(roomID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminCannotDeleteRoomInGame(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	seedQuestions(t, srv, "History", 3)
	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)
	roomID := createRoom(t, admin, ts, "Sala 1")

	ada := newTestClient(t)
	registerPlayer(t, ada, ts, "Ada", "ada@example.com")
	joinRoom(t, ada, ts, roomID)
	ben := newTestClient(t)
	registerPlayer(t, ben, ts, "Ben", "ben@example.com")
	joinRoom(t, ben, ts, roomID)
	if resp := admin.do(t, ts, http.MethodPost, "/api/rooms/"+strconv.Itoa(roomID)+"/start", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("start room: status %d", resp.StatusCode)
	}

	resp := admin.do(t, ts, http.MethodDelete, "/api/admin/rooms/"+strconv.Itoa(roomID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = admin.do(t, ts, http.MethodPut, "/api/admin/rooms/"+strconv.Itoa(roomID), map[string]any{
		"name": "Renamed",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected editing a running room to conflict, got status %d", resp.StatusCode)
	}
}

func TestAdminUserManagement(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)
	player := newTestClient(t)
	playerID := registerPlayer(t, player, ts, "Ada", "ada@example.com")

	resp := admin.do(t, ts, http.MethodGet, "/api/admin/users", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	users := decodeBody(t, resp)["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	resp = admin.do(t, ts, http.MethodPut, "/api/admin/users/"+strconv.Itoa(playerID), map[string]any{
		"team":     "Blue",
		"is_admin": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["team"] != "Blue" || body["is_admin"] != true {
		t.Fatalf("unexpected user after update: %v", body)
	}

	resp = admin.do(t, ts, http.MethodDelete, "/api/admin/users/"+strconv.Itoa(playerID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if _, ok := srv.store.GetUser(playerID); ok {
		t.Fatalf("expected user to be gone")
	}
}
