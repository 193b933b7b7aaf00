package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// SessionStore abstracts how in-flight quiz sessions are tracked
// (in-memory, Redis liveness markers, etc).
type SessionStore interface {
	Put(session *QuizSession)
	Get(sessionID string) (*QuizSession, bool)
	Delete(sessionID string)
}

// QuizSource provides quiz content for new sessions. Satisfied by
// CatalogService and by the caching repository decorators.
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AttemptLedger is the append-only per-user history of completed attempts.
type AttemptLedger interface {
	Record(ctx context.Context, attempt domain.QuizAttempt) error
	History(ctx context.Context, username string) ([]domain.QuizAttempt, error)
}

// QuizSession steps one user through one quiz attempt. It owns a deep
// snapshot of the quiz taken at start, so catalog edits never reach a
// running session. A session belongs to the single user who started it;
// the mutex protects it from a misbehaving transport, not from sharing.
type QuizSession struct {
	id       string
	username string

	mu       sync.Mutex
	quiz     domain.Quiz
	index    int
	score    int
	recorded bool
}

func newQuizSession(id, username string, quiz domain.Quiz) *QuizSession {
	return &QuizSession{id: id, username: username, quiz: quiz.Clone()}
}

// NewQuizSession is exported for infrastructure layers and tests that need
// to seed sessions without a manager.
func NewQuizSession(id, username string, quiz domain.Quiz) *QuizSession {
	return newQuizSession(id, username, quiz)
}

func (s *QuizSession) ID() string       { return s.id }
func (s *QuizSession) Username() string { return s.username }
func (s *QuizSession) QuizTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz.Title
}

// Progress returns the zero-based index of the question awaiting an answer
// and the total question count.
func (s *QuizSession) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, len(s.quiz.Questions)
}

// CurrentQuestion returns a copy of the question awaiting an answer, or
// ErrQuizCompleted once every question has been answered. A zero-question
// quiz is completed from the start.
func (s *QuizSession) CurrentQuestion() (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.quiz.Questions) {
		return domain.Question{}, domain.ErrQuizCompleted
	}
	return s.quiz.Questions[s.index].Clone(), nil
}

// SubmitAnswer scores the selected option set against the current question,
// advances the cursor, and returns feedback including the correct answers.
func (s *QuizSession) SubmitAnswer(selected []int) (domain.QuestionFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.quiz.Questions) {
		return domain.QuestionFeedback{}, domain.ErrQuizCompleted
	}
	question := s.quiz.Questions[s.index]
	correct := AnswersMatch(selected, question.CorrectAnswers)
	if correct {
		s.score++
	}
	s.index++
	return domain.QuestionFeedback{
		Correct:        correct,
		CorrectAnswers: append([]int(nil), question.CorrectAnswers...),
	}, nil
}

// Result is available only once the session is completed.
func (s *QuizSession) Result() (domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.quiz.Questions) {
		return domain.QuizResult{}, domain.ErrQuizNotCompleted
	}
	total := len(s.quiz.Questions)
	return domain.QuizResult{
		Score:      s.score,
		Total:      total,
		Percentage: Percentage(s.score, total),
	}, nil
}

// takeAttempt hands out the attempt record exactly once, and only after the
// session has completed. Subsequent calls return false.
func (s *QuizSession) takeAttempt(now time.Time) (domain.QuizAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.quiz.Questions) || s.recorded {
		return domain.QuizAttempt{}, false
	}
	s.recorded = true
	return domain.QuizAttempt{
		Username:       s.username,
		QuizTitle:      s.quiz.Title,
		Score:          s.score,
		TotalQuestions: len(s.quiz.Questions),
		Timestamp:      now,
	}, true
}

// SessionManager starts sessions against quiz snapshots, routes submissions,
// and appends the attempt to the ledger when a session completes.
type SessionManager struct {
	quizzes QuizSource
	store   SessionStore
	ledger  AttemptLedger
	now     func() time.Time
}

func NewSessionManager(quizzes QuizSource, store SessionStore, ledger AttemptLedger) *SessionManager {
	return NewSessionManagerWithClock(quizzes, store, ledger, time.Now)
}

// NewSessionManagerWithClock allows deterministic attempt timestamps in tests.
func NewSessionManagerWithClock(quizzes QuizSource, store SessionStore, ledger AttemptLedger, now func() time.Time) *SessionManager {
	return &SessionManager{quizzes: quizzes, store: store, ledger: ledger, now: now}
}

// Start snapshots the quiz and opens a new session for username.
func (m *SessionManager) Start(ctx context.Context, username, quizID string) (*QuizSession, error) {
	quiz, err := m.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	session := newQuizSession(uuid.NewString(), username, quiz)
	m.store.Put(session)
	return session, nil
}

// Get looks up an in-flight session by ID.
func (m *SessionManager) Get(sessionID string) (*QuizSession, error) {
	session, ok := m.store.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SubmitAnswer scores one submission. The attempt is recorded on the call
// that completes the quiz.
func (m *SessionManager) SubmitAnswer(ctx context.Context, sessionID string, selected []int) (domain.QuestionFeedback, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return domain.QuestionFeedback{}, err
	}
	feedback, err := session.SubmitAnswer(selected)
	if err != nil {
		return domain.QuestionFeedback{}, err
	}
	if err := m.recordIfCompleted(ctx, session); err != nil {
		return domain.QuestionFeedback{}, err
	}
	return feedback, nil
}

// Result returns the final score once the session has completed. Fetching
// the result also records the attempt for a zero-question quiz, which
// completes without any submissions.
func (m *SessionManager) Result(ctx context.Context, sessionID string) (domain.QuizResult, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return domain.QuizResult{}, err
	}
	result, err := session.Result()
	if err != nil {
		return domain.QuizResult{}, err
	}
	if err := m.recordIfCompleted(ctx, session); err != nil {
		return domain.QuizResult{}, err
	}
	return result, nil
}

// Close drops a session, completed or abandoned.
func (m *SessionManager) Close(sessionID string) {
	m.store.Delete(sessionID)
}

func (m *SessionManager) recordIfCompleted(ctx context.Context, session *QuizSession) error {
	attempt, ok := session.takeAttempt(m.now())
	if !ok {
		return nil
	}
	return m.ledger.Record(ctx, attempt)
}
