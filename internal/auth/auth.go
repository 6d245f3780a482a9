// Package auth registers and verifies users. The rest of the system only
// sees success or failure, never hash mechanics.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"GreenVest/internal/store"
)

// Service hashes passwords with bcrypt and stores accounts.
type Service struct {
	store *store.Store
}

// NewService creates an auth service over the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Register creates a new account with a bcrypt password hash. Returns
// store.ErrUserExists when the username is taken.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateAccount(ctx, username, string(hash))
}

// Verify reports whether the password matches the stored hash. An unknown
// username verifies false without error detail to the caller.
func (s *Service) Verify(ctx context.Context, username, password string) (bool, error) {
	account, err := s.store.GetAccount(ctx, username)
	if errors.Is(err, store.ErrUnknownUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	return err == nil, nil
}
