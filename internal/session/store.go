package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	noncePrefix   = "nonce:"
	revokedPrefix = "revoked:"
)

var ErrNoChallenge = errors.New("challenge expired or not requested")

// Store keeps wallet challenges and revoked token ids.
type Store interface {
	SetNonce(ctx context.Context, address, nonce string, ttl time.Duration) error
	// TakeNonce returns and forgets the pending nonce, or ErrNoChallenge.
	TakeNonce(ctx context.Context, address string) (string, error)
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) SetNonce(ctx context.Context, address, nonce string, ttl time.Duration) error {
	return s.rdb.Set(ctx, noncePrefix+address, nonce, ttl).Err()
}

func (s *RedisStore) TakeNonce(ctx context.Context, address string) (string, error) {
	nonce, err := s.rdb.GetDel(ctx, noncePrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoChallenge
	}
	return nonce, err
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
