// Package auth implements the credential lifecycle: secret hashing and
// verification, registration, login, and issuing/validating the signed
// access tokens that gate the protected route.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/authgate/internal/models"
	"github.com/crucial707/authgate/internal/repo"
)

// Service orchestrates registration, login, and access checks. It is the
// sole consumer of the user store. The signing key and TTL come from config
// at startup and are read-only afterwards; rotating the key invalidates
// every outstanding token.
type Service struct {
	Users  *repo.UserRepo
	secret []byte
	ttl    time.Duration
	cost   int
}

// NewService constructs a Service. cost is the bcrypt work factor; pass
// bcrypt.DefaultCost in production and bcrypt.MinCost in tests.
func NewService(users *repo.UserRepo, secret []byte, ttl time.Duration, cost int) *Service {
	return &Service{Users: users, secret: secret, ttl: ttl, cost: cost}
}

// Register hashes the secret and creates the user. The plaintext secret is
// never stored or logged; the response carries no secret material.
func (s *Service) Register(ctx context.Context, username, secret string) (*models.User, error) {
	if username == "" || secret == "" {
		return nil, ErrInvalidInput
	}

	hash, err := HashSecret(secret, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	user, err := s.Users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return user, nil
}

// Login verifies the credentials and issues a signed access token with the
// username as identity. Unknown usernames and wrong secrets return the same
// ErrInvalidCredentials, and the unknown-user path still runs a bcrypt
// compare so the two are not trivially distinguishable by timing either.
func (s *Service) Login(ctx context.Context, username, secret string) (string, error) {
	if username == "" || secret == "" {
		return "", ErrInvalidInput
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			VerifySecret(dummyHash, secret)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !VerifySecret(user.PasswordHash, secret) {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(user.Username, s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// VerifyAccess validates a token string and returns the identity it was
// issued for. No state is read or written; validity depends only on the
// signature, the expiry claim, and the clock.
func (s *Service) VerifyAccess(tokenString string) (string, error) {
	return ParseToken(tokenString, s.secret)
}
