package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/agentdms/admin/errors"
)

const resetKeyPrefix = "reset:"

// DefaultResetTTL is how long a reset token stays valid.
const DefaultResetTTL = 30 * time.Minute

// PasswordResetStore issues single-use password reset tokens.
type PasswordResetStore struct {
	KV  KV
	TTL time.Duration
}

func NewPasswordResetStore(kv KV, ttl time.Duration) *PasswordResetStore {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &PasswordResetStore{KV: kv, TTL: ttl}
}

// generateResetToken creates a random 32 byte hex token.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreateResetToken stores a token for userID and returns it.
func (s *PasswordResetStore) CreateResetToken(ctx context.Context, userID string) (string, error) {
	token, err := generateResetToken()
	if err != nil {
		return "", err
	}
	if err := s.KV.Set(ctx, resetKeyPrefix+token, userID, s.TTL); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeResetToken returns the user of a valid token and invalidates it.
// Unknown or expired tokens fail with ErrInvalidRequest.
func (s *PasswordResetStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.ErrInvalidRequest
	}
	userID, err := s.KV.Get(ctx, resetKeyPrefix+token)
	if errors.Is(err, errors.ErrNotFound) {
		return "", errors.ErrInvalidRequest
	}
	if err != nil {
		return "", err
	}
	if err := s.KV.Delete(ctx, resetKeyPrefix+token); err != nil {
		return "", err
	}
	return userID, nil
}
