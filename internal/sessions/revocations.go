package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/messagely/messagely/internal/logger"
)

const revokedKeyPrefix = "sessions:revoked:"

// RevocationStore keeps revoked token ids in Redis until the token expires.
// Tokens are stateless JWTs, so logout works by denylisting the jti.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore backed by the given client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke denylists a token id. The TTL should be the remaining token
// lifetime; entries for already-expired tokens are not stored.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
	if err != nil {
		logger.Log.Errorw("failed to revoke token", "token_id", tokenID, "error", err)
	}
	return err
}

// IsRevoked reports whether a token id has been denylisted.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		logger.Log.Errorw("failed to check token revocation", "token_id", tokenID, "error", err)
		return false, err
	}
	return n > 0, nil
}
