package server

import (
	"net/http"
	"testing"

	"gincana/internal/config"
)

func TestHomePage(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	resp := client.do(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestPlayViewRequiresLogin(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	resp := client.do(t, ts, http.MethodGet, "/play", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %q", location)
	}

	registerPlayer(t, client, ts, "Ada", "ada@example.com")
	resp = client.do(t, ts, http.MethodGet, "/play", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminViewRequiresAdmin(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	registerPlayer(t, client, ts, "Ada", "ada@example.com")
	resp := client.do(t, ts, http.MethodGet, "/admin", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, resp.StatusCode)
	}

	admin := newTestClient(t)
	registerAdmin(t, admin, ts, srv)
	resp = admin.do(t, ts, http.MethodGet, "/admin", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestRoomViewRedirectsWhenMissing(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	registerPlayer(t, client, ts, "Ada", "ada@example.com")
	resp := client.do(t, ts, http.MethodGet, "/rooms/99", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/play" {
		t.Fatalf("expected redirect to /play, got %q", location)
	}
}

func TestRegister(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	resp := client.do(t, ts, http.MethodPost, "/api/register", map[string]string{
		"name":     "Ada",
		"email":    "Ada@Example.com",
		"team":     "Blue",
		"class":    "3B",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["email"] != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %v", body["email"])
	}
	if body["is_admin"] != false {
		t.Fatalf("expected is_admin false, got %v", body["is_admin"])
	}

	resp = client.do(t, ts, http.MethodGet, "/api/me", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected session after register, got status %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	registerPlayer(t, client, ts, "Ada", "ada@example.com")
	resp := newTestClient(t).do(t, ts, http.MethodPost, "/api/register", map[string]string{
		"name":     "Other",
		"email":    "ADA@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	resp := client.do(t, ts, http.MethodPost, "/api/register", map[string]string{
		"name":     "Ada",
		"email":    "not-an-email",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = client.do(t, ts, http.MethodPost, "/api/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestLoginAndLogout(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	registerPlayer(t, newTestClient(t), ts, "Ada", "ada@example.com")

	client := newTestClient(t)
	resp := client.do(t, ts, http.MethodPost, "/api/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp = client.do(t, ts, http.MethodPost, "/api/login", map[string]string{
		"email":    "ada@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "Ada" {
		t.Fatalf("expected name Ada, got %v", body["name"])
	}

	resp = client.do(t, ts, http.MethodPost, "/api/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	resp = client.do(t, ts, http.MethodGet, "/api/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d after logout, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	client := newTestClient(t)
	registerPlayer(t, client, ts, "Ada", "ada@example.com")

	resp := client.do(t, ts, http.MethodPost, "/api/password", map[string]string{
		"current": "wrong-password",
		"new":     "changed1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp = client.do(t, ts, http.MethodPost, "/api/password", map[string]string{
		"current": "secret1",
		"new":     "changed1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	fresh := newTestClient(t)
	resp = fresh.do(t, ts, http.MethodPost, "/api/login", map[string]string{
		"email":    "ada@example.com",
		"password": "changed1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login with new password, got status %d", resp.StatusCode)
	}
}

func TestMeRequiresSession(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	resp := newTestClient(t).do(t, ts, http.MethodGet, "/api/me", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestListCategoriesWithCounts(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	seedQuestions(t, srv, "History", 3)
	resp := newTestClient(t).do(t, ts, http.MethodGet, "/api/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	categories := body["categories"].([]any)
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	first := categories[0].(map[string]any)
	if first["name"] != "History" {
		t.Fatalf("expected History, got %v", first["name"])
	}
	if int(first["questions"].(float64)) != 3 {
		t.Fatalf("expected 3 questions, got %v", first["questions"])
	}
}
