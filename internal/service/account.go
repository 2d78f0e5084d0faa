// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept repository interfaces (not concrete sqlite types) so
// tests can inject in-memory mocks, and they return apperror values rather
// than HTTP status codes — the handler layer owns that translation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/cliphub/internal/apperror"
	"github.com/sakif/cliphub/internal/auth"
	"github.com/sakif/cliphub/internal/model"
	"github.com/sakif/cliphub/internal/repository"
)

// Account field limits, enforced before any row is written.
const (
	MaxUsernameLength = 20
	MaxPasswordLength = 40
)

// AccountService handles registration and login.
type AccountService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account and returns it.
//
// Check order matters and short-circuits on the first failure:
//  1. username not already taken → Conflict
//  2. username ≤ 20 chars        → Validation
//  3. password ≤ 40 chars        → Validation
//
// The uniqueness check here and the INSERT are separate statements, so two
// concurrent registrations can both pass step 1; the UNIQUE constraint on
// username then fails the second insert, which the repository reports as
// the same Conflict error. Either way the caller sees a clean conflict.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.User, error) {
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, apperror.Conflict("unsuccessful registration: user with username already exists")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking username %q: %w", username, err)
	}

	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username", "unsuccessful registration: username too long")
	}
	if len(password) > MaxPasswordLength {
		return nil, apperror.ValidationFailed("password", "unsuccessful registration: password too long")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login checks the credentials and returns the matching user.
//
// An unknown username and a wrong password both produce the same
// Unauthenticated "not a valid login" — the caller can't probe which
// usernames exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Unauthenticated("not a valid login")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthenticated("not a valid login")
	}

	return user, nil
}
