package http

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quizhub/internal/domain"
)

func TestLiveAttemptsStream(t *testing.T) {
	env := newTestEnv(t)
	quizID := env.seedQuiz(t, 2)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/admin/attempts/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{
		"X-User-ID":   {"a1"},
		"X-User-Role": {"admin"},
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The ready frame confirms the server subscribed before we submit.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ready struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&ready); err != nil {
		t.Fatalf("read ready: %v", err)
	}
	if ready.Type != "ready" {
		t.Fatalf("expected ready frame, got %q", ready.Type)
	}

	resp, body := env.do(t, http.MethodPost, "/api/quizzes/"+quizID+"/submit", map[string]any{
		"answers":   []any{0, 1},
		"timeTaken": 42,
	}, asUser("u1"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: %d %s", resp.StatusCode, body)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var event struct {
		Type    string              `json:"type"`
		Payload domain.AttemptEvent `json:"payload"`
	}
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Type != "attempt" {
		t.Fatalf("unexpected event type %q", event.Type)
	}
	if event.Payload.QuizID != quizID || event.Payload.UserID != "u1" {
		t.Fatalf("unexpected payload: %+v", event.Payload)
	}
	if event.Payload.TotalQuestions != 2 {
		t.Fatalf("unexpected total: %+v", event.Payload)
	}
}

func TestLiveAttemptsRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/admin/attempts/live"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"X-User-ID": {"u1"}})
	if err == nil {
		t.Fatalf("expected dial to fail for non-admin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 handshake rejection, got %+v", resp)
	}
}
