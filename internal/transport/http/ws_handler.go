package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// WSHandler exposes the quiz operations over a websocket. Each connection
// carries one authenticated user and at most one in-flight quiz session;
// the role gate for authoring and taking lives here, not in the services.
type WSHandler struct {
	identity *app.IdentityService
	catalog  *app.CatalogService
	sessions *app.SessionManager
	history  *app.HistoryService
	upgrader websocket.Upgrader
}

func NewWSHandler(identity *app.IdentityService, catalog *app.CatalogService, sessions *app.SessionManager, history *app.HistoryService) *WSHandler {
	return &WSHandler{
		identity: identity,
		catalog:  catalog,
		sessions: sessions,
		history:  history,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loggedInPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type createQuizPayload struct {
	Title string `json:"title"`
}

type questionPayload struct {
	QuizID         string   `json:"quizId"`
	Index          int      `json:"index"`
	Prompt         string   `json:"prompt"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
}

type quizRefPayload struct {
	QuizID string `json:"quizId"`
}

type answerPayload struct {
	Selected []int `json:"selected"`
}

// questionView is what a quiz taker sees: the correct answers stay server-side
// until the submission comes back with feedback.
type questionView struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// connState tracks who is on the other end of one websocket.
type connState struct {
	username  string
	role      domain.Role
	sessionID string
}

// ServeWS upgrades the request and runs the message loop. Responses are
// written from the read loop only, so no write synchronization is needed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	state := &connState{}
	defer func() {
		if state.sessionID != "" {
			h.sessions.Close(state.sessionID)
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		if err := h.dispatch(r, conn, state, inbound); err != nil {
			writeMessage(conn, "error", errorPayload{Message: err.Error()})
		}
	}
}

func (h *WSHandler) dispatch(r *http.Request, conn *websocket.Conn, state *connState, inbound inboundMessage) error {
	ctx := r.Context()

	switch inbound.Type {
	case "register":
		var creds credentialsPayload
		if err := json.Unmarshal(inbound.Payload, &creds); err != nil {
			return errInvalidPayload
		}
		if err := h.identity.Register(ctx, creds.Username, creds.Password); err != nil {
			return err
		}
		writeMessage(conn, "registered", struct{}{})
		return nil

	case "login":
		var creds credentialsPayload
		if err := json.Unmarshal(inbound.Payload, &creds); err != nil {
			return errInvalidPayload
		}
		role, err := h.identity.Authenticate(ctx, creds.Username, creds.Password)
		if err != nil {
			return err
		}
		state.username = creds.Username
		state.role = role
		writeMessage(conn, "loggedIn", loggedInPayload{Username: creds.Username, Role: role})
		return nil

	case "listQuizzes":
		if err := requireLogin(state); err != nil {
			return err
		}
		quizzes, err := h.catalog.ListQuizzes(ctx)
		if err != nil {
			return err
		}
		writeMessage(conn, "quizzes", quizzes)
		return nil

	case "createQuiz":
		if err := requireRole(state, domain.RoleAdmin); err != nil {
			return err
		}
		var payload createQuizPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		summary, err := h.catalog.CreateQuiz(ctx, payload.Title)
		if err != nil {
			return err
		}
		writeMessage(conn, "quizCreated", summary)
		return nil

	case "addQuestion":
		if err := requireRole(state, domain.RoleAdmin); err != nil {
			return err
		}
		var payload questionPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		err := h.catalog.AddQuestion(ctx, payload.QuizID, domain.Question{
			Prompt:         payload.Prompt,
			Options:        payload.Options,
			CorrectAnswers: payload.CorrectAnswers,
		})
		if err != nil {
			return err
		}
		writeMessage(conn, "questionAdded", struct{}{})
		return nil

	case "updateQuestion":
		if err := requireRole(state, domain.RoleAdmin); err != nil {
			return err
		}
		var payload questionPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		err := h.catalog.UpdateQuestion(ctx, payload.QuizID, payload.Index,
			payload.Prompt, payload.Options, payload.CorrectAnswers)
		if err != nil {
			return err
		}
		writeMessage(conn, "questionUpdated", struct{}{})
		return nil

	case "deleteQuiz":
		if err := requireRole(state, domain.RoleAdmin); err != nil {
			return err
		}
		var payload quizRefPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		if err := h.catalog.DeleteQuiz(ctx, payload.QuizID); err != nil {
			return err
		}
		writeMessage(conn, "quizDeleted", struct{}{})
		return nil

	case "startQuiz":
		if err := requireRole(state, domain.RoleUser); err != nil {
			return err
		}
		var payload quizRefPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		if state.sessionID != "" {
			h.sessions.Close(state.sessionID)
		}
		session, err := h.sessions.Start(ctx, state.username, payload.QuizID)
		if err != nil {
			return err
		}
		state.sessionID = session.ID()
		return h.sendCurrentQuestion(conn, session)

	case "question":
		if err := requireRole(state, domain.RoleUser); err != nil {
			return err
		}
		session, err := h.sessions.Get(state.sessionID)
		if err != nil {
			return err
		}
		return h.sendCurrentQuestion(conn, session)

	case "answer":
		if err := requireRole(state, domain.RoleUser); err != nil {
			return err
		}
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		feedback, err := h.sessions.SubmitAnswer(ctx, state.sessionID, payload.Selected)
		if err != nil {
			return err
		}
		writeMessage(conn, "feedback", feedback)
		return nil

	case "result":
		if err := requireRole(state, domain.RoleUser); err != nil {
			return err
		}
		result, err := h.sessions.Result(ctx, state.sessionID)
		if err != nil {
			return err
		}
		h.sessions.Close(state.sessionID)
		state.sessionID = ""
		writeMessage(conn, "result", result)
		return nil

	case "history":
		if err := requireRole(state, domain.RoleUser); err != nil {
			return err
		}
		attempts, err := h.history.History(ctx, state.username)
		if err != nil {
			return err
		}
		writeMessage(conn, "history", attempts)
		return nil

	default:
		return errUnsupportedType
	}
}

// sendCurrentQuestion sends the pending question, or the completion signal
// when none remain (a zero-question quiz completes immediately).
func (h *WSHandler) sendCurrentQuestion(conn *websocket.Conn, session *app.QuizSession) error {
	question, err := session.CurrentQuestion()
	if err == domain.ErrQuizCompleted {
		writeMessage(conn, "completed", struct{}{})
		return nil
	}
	if err != nil {
		return err
	}
	current, total := session.Progress()
	writeMessage(conn, "question", questionView{
		Number:  current + 1,
		Total:   total,
		Prompt:  question.Prompt,
		Options: question.Options,
	})
	return nil
}

func requireLogin(state *connState) error {
	if state.username == "" {
		return errNotLoggedIn
	}
	return nil
}

func requireRole(state *connState, role domain.Role) error {
	if err := requireLogin(state); err != nil {
		return err
	}
	if state.role != role {
		return errForbidden
	}
	return nil
}

func writeMessage[T any](conn *websocket.Conn, msgType string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
