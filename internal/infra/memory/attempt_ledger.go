package memory

import (
	"context"
	"sync"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// AttemptLedger is the in-memory implementation of app.AttemptLedger:
// an append-only per-user list in insertion order.
type AttemptLedger struct {
	mu       sync.RWMutex
	attempts map[string][]domain.QuizAttempt
}

func NewAttemptLedger() *AttemptLedger {
	return &AttemptLedger{attempts: make(map[string][]domain.QuizAttempt)}
}

func (l *AttemptLedger) Record(_ context.Context, attempt domain.QuizAttempt) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[attempt.Username] = append(l.attempts[attempt.Username], attempt)
	return nil
}

// History returns a copy so callers cannot mutate the ledger behind its back.
func (l *AttemptLedger) History(_ context.Context, username string) ([]domain.QuizAttempt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.QuizAttempt(nil), l.attempts[username]...), nil
}
