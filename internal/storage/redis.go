package storage

import (
	"context"
	"errors"
	"fmt"

	"refashion/internal/refashionerrors"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists namespaced values in Redis under "<prefix>:<namespace>:<key>"
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new RedisStore
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) redisKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, namespace, key)
}

// Get retrieves the raw value stored under namespace/key
func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.redisKey(namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("get %s/%s: %w", namespace, key, refashionerrors.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}
	return raw, nil
}

// Set stores value under namespace/key without expiry
func (s *RedisStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := s.client.Set(ctx, s.redisKey(namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Remove deletes namespace/key
func (s *RedisStore) Remove(ctx context.Context, namespace, key string) error {
	if err := s.client.Del(ctx, s.redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("remove %s/%s: %w", namespace, key, err)
	}
	return nil
}
