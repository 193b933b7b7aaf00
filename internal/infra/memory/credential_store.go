package memory

import (
	"context"
	"sync"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// CredentialStore is the in-memory implementation of app.CredentialStore.
// One map keyed by username keeps the user and admin sets disjoint by
// construction.
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[string]domain.Credential)}
}

func (s *CredentialStore) Create(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.creds[cred.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	s.creds[cred.Username] = cred
	return nil
}

func (s *CredentialStore) Get(_ context.Context, username string) (domain.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[username]
	return cred, ok, nil
}
