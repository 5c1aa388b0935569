package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "liftlog-revoked-token||"

// RevocationStore keeps revoked token ids in redis until the token would have expired anyway.
type RevocationStore struct {
	redisClient *redis.Client
}

func NewRevocationStore(redisClient *redis.Client) *RevocationStore {
	return &RevocationStore{
		redisClient: redisClient,
	}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("empty token id")
	}
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return s.redisClient.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := s.redisClient.Exists(ctx, revokedKeyPrefix+tokenID)
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.Val() > 0, nil
}
