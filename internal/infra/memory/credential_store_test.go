package memory

import (
	"context"
	"testing"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

func TestCredentialStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore()

	cred := domain.Credential{Username: "alice", Secret: "hashed", Role: domain.RoleUser}
	if err := store.Create(ctx, cred); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok, err := store.Get(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != cred {
		t.Fatalf("expected %+v, got %+v", cred, got)
	}

	if _, ok, _ := store.Get(ctx, "bob"); ok {
		t.Fatalf("expected miss for unknown user")
	}
}

func TestCredentialStoreRejectsDuplicatesAcrossRoles(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore()

	_ = store.Create(ctx, domain.Credential{Username: "admin", Secret: "h", Role: domain.RoleAdmin})
	err := store.Create(ctx, domain.Credential{Username: "admin", Secret: "x", Role: domain.RoleUser})
	if err != domain.ErrDuplicateUsername {
		t.Fatalf("expected duplicate username, got %v", err)
	}
}
