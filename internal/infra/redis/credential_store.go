package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

const credentialsKey = "quiz:credentials"

// CredentialStore keeps credentials in a single Redis hash keyed by
// username. HSETNX gives the atomic duplicate check across both role sets.
type CredentialStore struct {
	client *redis.Client
}

func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

func (s *CredentialStore) Create(ctx context.Context, cred domain.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	set, err := s.client.HSetNX(ctx, credentialsKey, cred.Username, raw).Result()
	if err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	if !set {
		return domain.ErrDuplicateUsername
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, username string) (domain.Credential, bool, error) {
	raw, err := s.client.HGet(ctx, credentialsKey, username).Result()
	if err == redis.Nil {
		return domain.Credential{}, false, nil
	}
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("load credential: %w", err)
	}
	var cred domain.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return domain.Credential{}, false, fmt.Errorf("unmarshal credential: %w", err)
	}
	return cred, true, nil
}
