package app

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// CredentialStore persists login records. Both role sets live in one store;
// Create must reject a username that exists under either role.
type CredentialStore interface {
	Create(ctx context.Context, cred domain.Credential) error
	Get(ctx context.Context, username string) (domain.Credential, bool, error)
}

// CredentialVerifier encodes secrets at registration time and checks them at
// login. Keeping it behind an interface lets the stored form change without
// touching the authenticate contract.
type CredentialVerifier interface {
	Hash(secret string) (string, error)
	Verify(encoded, secret string) bool
}

// BcryptVerifier hashes secrets with bcrypt.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(secret string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (v BcryptVerifier) Verify(encoded, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(secret)) == nil
}

// IdentityService resolves registration and login for users and admins.
type IdentityService struct {
	store    CredentialStore
	verifier CredentialVerifier
}

func NewIdentityService(store CredentialStore, verifier CredentialVerifier) *IdentityService {
	return &IdentityService{store: store, verifier: verifier}
}

// Register creates a plain user account. Admin accounts are provisioned
// out-of-band via SeedAdmin. Fails with ErrDuplicateUsername when the name
// exists under either role.
func (s *IdentityService) Register(ctx context.Context, username, secret string) error {
	encoded, err := s.verifier.Hash(secret)
	if err != nil {
		return err
	}
	return s.store.Create(ctx, domain.Credential{
		Username: username,
		Secret:   encoded,
		Role:     domain.RoleUser,
	})
}

// Authenticate returns the role the username was registered under, or
// ErrInvalidCredentials on any mismatch.
func (s *IdentityService) Authenticate(ctx context.Context, username, secret string) (domain.Role, error) {
	cred, ok, err := s.store.Get(ctx, username)
	if err != nil {
		return "", err
	}
	if !ok || !s.verifier.Verify(cred.Secret, secret) {
		return "", domain.ErrInvalidCredentials
	}
	return cred.Role, nil
}

// SeedAdmin provisions an admin account at startup. Seeding an already
// existing admin is a no-op so restarts against a durable store succeed.
func (s *IdentityService) SeedAdmin(ctx context.Context, username, secret string) error {
	encoded, err := s.verifier.Hash(secret)
	if err != nil {
		return err
	}
	err = s.store.Create(ctx, domain.Credential{
		Username: username,
		Secret:   encoded,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicateUsername) {
		return nil
	}
	return err
}
