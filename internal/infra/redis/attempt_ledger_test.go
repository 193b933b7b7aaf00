package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

func TestAttemptLedgerOrdering(t *testing.T) {
	ctx := context.Background()
	ledger := NewAttemptLedger(newClient(t))

	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = ledger.Record(ctx, domain.QuizAttempt{Username: "alice", QuizTitle: "A", Score: 1, TotalQuestions: 2, Timestamp: when})
	_ = ledger.Record(ctx, domain.QuizAttempt{Username: "alice", QuizTitle: "B", Score: 2, TotalQuestions: 2, Timestamp: when})

	attempts, err := ledger.History(ctx, "alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(attempts) != 2 || attempts[0].QuizTitle != "A" || attempts[1].QuizTitle != "B" {
		t.Fatalf("expected [A, B], got %+v", attempts)
	}
	if !attempts[0].Timestamp.Equal(when) {
		t.Fatalf("timestamp did not survive the round trip: %v", attempts[0].Timestamp)
	}
}

func TestAttemptLedgerKeysAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	ledger := NewAttemptLedger(newClient(t))

	_ = ledger.Record(ctx, domain.QuizAttempt{Username: "alice", QuizTitle: "A"})

	attempts, err := ledger.History(ctx, "bob")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(attempts) != 0 {
		t.Fatalf("expected empty history for bob, got %+v", attempts)
	}
}
