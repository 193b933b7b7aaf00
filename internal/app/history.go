package app

import (
	"context"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// HistoryService exposes the per-user attempt history.
type HistoryService struct {
	ledger AttemptLedger
}

func NewHistoryService(ledger AttemptLedger) *HistoryService {
	return &HistoryService{ledger: ledger}
}

// History returns the user's attempts in the order they were recorded.
// A user with no attempts gets an empty slice, not an error.
func (s *HistoryService) History(ctx context.Context, username string) ([]domain.QuizAttempt, error) {
	return s.ledger.History(ctx, username)
}
