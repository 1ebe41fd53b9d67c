package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// testClient carries its own cookie jar so each simulated player holds a
// distinct session. Redirects are not followed so view tests can assert them.
type testClient struct {
	http *http.Client
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &testClient{
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func registerPlayer(t *testing.T, c *testClient, ts *httptest.Server, name, email string) int {
	t.Helper()
	resp := c.do(t, ts, http.MethodPost, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return int(body["user_id"].(float64))
}

// makeAdmin flips the admin flag in the store directly; registration over the
// API never grants it.
func makeAdmin(t *testing.T, srv *Server, userID int) {
	t.Helper()
	if _, err := srv.store.UpdateUser(userID, func(user *User) error {
		user.IsAdmin = true
		return nil
	}); err != nil {
		t.Fatalf("make admin: %v", err)
	}
}

func registerAdmin(t *testing.T, c *testClient, ts *httptest.Server, srv *Server) int {
	t.Helper()
	userID := registerPlayer(t, c, ts, "Admin", "admin@example.com")
	makeAdmin(t, srv, userID)
	return userID
}

// seedQuestions fills the bank with n questions in one category. Every
// question's correct option is "alpha".
func seedQuestions(t *testing.T, srv *Server, categoryName string, n int) (int, []int) {
	t.Helper()
	cat, err := srv.store.CreateCategory(categoryName, "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	ids := make([]int, 0, n)
	for i := 0; i < n; i++ {
		question, err := srv.store.CreateQuestion(cat.ID, "Question "+strconv.Itoa(i+1), 1, []AnswerOption{
			{Text: "alpha", Correct: true},
			{Text: "beta"},
			{Text: "gamma"},
			{Text: "delta"},
		})
		if err != nil {
			t.Fatalf("create question: %v", err)
		}
		ids = append(ids, question.ID)
	}
	return cat.ID, ids
}

func createRoom(t *testing.T, admin *testClient, ts *httptest.Server, name string) int {
	t.Helper()
	resp := admin.do(t, ts, http.MethodPost, "/api/admin/rooms", map[string]any{
		"name": name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return int(body["room_id"].(float64))
}

func joinRoom(t *testing.T, c *testClient, ts *httptest.Server, roomID int) map[string]any {
	t.Helper()
	resp := c.do(t, ts, http.MethodPost, "/api/rooms/"+strconv.Itoa(roomID)+"/join", map[string]any{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}
