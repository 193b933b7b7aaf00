package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

func TestSessionStoreSetsAndClearsLivenessKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	session := app.NewQuizSession("s1", "alice", domain.Quiz{ID: "quiz-1", Title: "Sample"})
	store.Put(session)

	if !mr.Exists("quiz:session:s1") {
		t.Fatalf("expected liveness key to be set")
	}
	if got, ok := store.Get("s1"); !ok || got.ID() != "s1" {
		t.Fatalf("expected local session, ok=%v", ok)
	}

	store.Delete("s1")
	if mr.Exists("quiz:session:s1") {
		t.Fatalf("expected liveness key removed")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
