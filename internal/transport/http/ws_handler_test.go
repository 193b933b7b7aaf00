package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/infra/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := app.NewCatalogService(memory.NewQuizRepository())
	ledger := memory.NewAttemptLedger()
	identity := app.NewIdentityService(memory.NewCredentialStore(), app.BcryptVerifier{Cost: 4})
	sessions := app.NewSessionManager(catalog, memory.NewSessionStore(), ledger)
	history := app.NewHistoryService(ledger)

	if err := identity.SeedAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	handler := NewWSHandler(identity, catalog, sessions, history)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.ServeWS)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := conn.WriteJSON(map[string]any{"type": msgType, "payload": json.RawMessage(raw)}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) json.RawMessage {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s (payload %s)", expect, msg.Type, msg.Payload)
	}
	return msg.Payload
}

func TestFullQuizJourney(t *testing.T) {
	server := newTestServer(t)

	// Admin authors a quiz on one connection.
	admin := dial(t, server)
	send(t, admin, "login", map[string]string{"username": "admin", "password": "admin123"})
	readNext(t, admin, "loggedIn")

	send(t, admin, "createQuiz", map[string]string{"title": "Capitals"})
	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(readNext(t, admin, "quizCreated"), &created); err != nil {
		t.Fatalf("unmarshal quizCreated: %v", err)
	}

	send(t, admin, "addQuestion", map[string]any{
		"quizId":         created.ID,
		"prompt":         "Capital of France?",
		"options":        []string{"Paris", "Lyon"},
		"correctAnswers": []int{0},
	})
	readNext(t, admin, "questionAdded")
	send(t, admin, "addQuestion", map[string]any{
		"quizId":         created.ID,
		"prompt":         "Which are Nordic countries?",
		"options":        []string{"Norway", "Poland", "Sweden"},
		"correctAnswers": []int{0, 2},
	})
	readNext(t, admin, "questionAdded")

	// A user registers, takes the quiz, and checks their history.
	user := dial(t, server)
	send(t, user, "register", map[string]string{"username": "alice", "password": "pw"})
	readNext(t, user, "registered")
	send(t, user, "login", map[string]string{"username": "alice", "password": "pw"})
	readNext(t, user, "loggedIn")

	send(t, user, "listQuizzes", struct{}{})
	var quizzes []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(readNext(t, user, "quizzes"), &quizzes); err != nil {
		t.Fatalf("unmarshal quizzes: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].Title != "Capitals" {
		t.Fatalf("expected one quiz Capitals, got %+v", quizzes)
	}

	send(t, user, "startQuiz", map[string]string{"quizId": created.ID})
	var question struct {
		Number  int      `json:"number"`
		Total   int      `json:"total"`
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
	}
	if err := json.Unmarshal(readNext(t, user, "question"), &question); err != nil {
		t.Fatalf("unmarshal question: %v", err)
	}
	if question.Number != 1 || question.Total != 2 || question.Prompt != "Capital of France?" {
		t.Fatalf("unexpected first question %+v", question)
	}

	send(t, user, "answer", map[string]any{"selected": []int{0}})
	var feedback struct {
		Correct        bool  `json:"correct"`
		CorrectAnswers []int `json:"correctAnswers"`
	}
	if err := json.Unmarshal(readNext(t, user, "feedback"), &feedback); err != nil {
		t.Fatalf("unmarshal feedback: %v", err)
	}
	if !feedback.Correct {
		t.Fatalf("first answer should be correct")
	}

	send(t, user, "answer", map[string]any{"selected": []int{0}})
	if err := json.Unmarshal(readNext(t, user, "feedback"), &feedback); err != nil {
		t.Fatalf("unmarshal feedback: %v", err)
	}
	if feedback.Correct {
		t.Fatalf("partial multi-select must not score")
	}
	if len(feedback.CorrectAnswers) != 2 {
		t.Fatalf("feedback should reveal the correct set, got %v", feedback.CorrectAnswers)
	}

	send(t, user, "result", struct{}{})
	var result struct {
		Score      int     `json:"score"`
		Total      int     `json:"total"`
		Percentage float64 `json:"percentage"`
	}
	if err := json.Unmarshal(readNext(t, user, "result"), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Score != 1 || result.Total != 2 || result.Percentage != 50 {
		t.Fatalf("expected 1/2 at 50%%, got %+v", result)
	}

	send(t, user, "history", struct{}{})
	var attempts []struct {
		QuizTitle string `json:"quizTitle"`
		Score     int    `json:"score"`
	}
	if err := json.Unmarshal(readNext(t, user, "history"), &attempts); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(attempts) != 1 || attempts[0].QuizTitle != "Capitals" || attempts[0].Score != 1 {
		t.Fatalf("unexpected history %+v", attempts)
	}
}

func TestRoleGating(t *testing.T) {
	server := newTestServer(t)

	conn := dial(t, server)

	// Unauthenticated callers are rejected outright.
	send(t, conn, "listQuizzes", struct{}{})
	readNext(t, conn, "error")

	send(t, conn, "register", map[string]string{"username": "bob", "password": "pw"})
	readNext(t, conn, "registered")
	send(t, conn, "login", map[string]string{"username": "bob", "password": "pw"})
	readNext(t, conn, "loggedIn")

	// Plain users cannot author quizzes.
	send(t, conn, "createQuiz", map[string]string{"title": "Nope"})
	readNext(t, conn, "error")

	// Admins cannot take quizzes.
	admin := dial(t, server)
	send(t, admin, "login", map[string]string{"username": "admin", "password": "admin123"})
	readNext(t, admin, "loggedIn")
	send(t, admin, "startQuiz", map[string]string{"quizId": "whatever"})
	readNext(t, admin, "error")
}

func TestLoginFailure(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server)

	send(t, conn, "login", map[string]string{"username": "admin", "password": "wrong"})
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(readNext(t, conn, "error"), &payload); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if payload.Message == "" {
		t.Fatalf("expected an error message")
	}
}
