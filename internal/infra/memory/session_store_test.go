package memory

import (
	"testing"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	session := app.NewQuizSession("s1", "alice", domain.Quiz{ID: "quiz-1", Title: "Sample"})

	store.Put(session)
	got, ok := store.Get("s1")
	if !ok || got.Username() != "alice" {
		t.Fatalf("expected stored session for alice, got ok=%v", ok)
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
