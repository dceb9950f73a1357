package store

import (
	"context"
	"time"

	"github.com/agentdms/admin/errors"
)

const revokedKeyPrefix = "revoked:"

// RevocationStore remembers revoked token ids until the tokens expire.
type RevocationStore struct {
	KV KV
}

func NewRevocationStore(kv KV) *RevocationStore { return &RevocationStore{KV: kv} }

// RevokeToken marks a token id as revoked until expiresAt. Tokens that already
// expired need no entry.
func (s *RevocationStore) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.KV.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl)
}

// IsTokenRevoked reports whether a token id was revoked.
func (s *RevocationStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.KV.Get(ctx, revokedKeyPrefix+tokenID)
	if errors.Is(err, errors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
