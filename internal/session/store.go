package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// Store is the key-value backend holding per-visitor state.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
	// Move hands all state of one session id over to another.
	Move(ctx context.Context, from, to string) error
}

// RedisStore keeps each session in one hash. Every write pushes the expiry out by ttl.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, fmt.Sprintf(redisx.KeySession, sid), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	k := fmt.Sprintf(redisx.KeySession, sid)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, fmt.Sprintf(redisx.KeySession, sid), keys...).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *RedisStore) Move(ctx context.Context, from, to string) error {
	src := fmt.Sprintf(redisx.KeySession, from)
	n, err := s.rdb.Exists(ctx, src).Result()
	if err != nil {
		return fmt.Errorf("session move: %w", err)
	}
	if n == 0 {
		return nil
	}
	dst := fmt.Sprintf(redisx.KeySession, to)
	pipe := s.rdb.TxPipeline()
	pipe.Rename(ctx, src, dst)
	pipe.Expire(ctx, dst, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session move: %w", err)
	}
	return nil
}
