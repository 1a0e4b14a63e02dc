// Package redisstore implements the store.Store interface on top of a
// shared Redis instance using the go-redis client.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/creatorlab/taskgate/internal/store"
)

// RedisStore adapts a *redis.Client to the store.Store interface. The
// client is process-wide, created once at startup and shared by all
// requests; RedisStore adds no pooling or locking of its own.
type RedisStore struct {
	client *redis.Client
}

// New wraps an existing Redis client. The caller owns the client's
// lifecycle and closes it at shutdown.
func New(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect creates a Redis client for the given address and database and
// verifies connectivity with a ping before returning.
func Connect(ctx context.Context, addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %v", store.ErrUnavailable, addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrKeyNotFound
		}
		return nil, store.NewStoreError("get", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return store.NewStoreError("set", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return store.NewStoreError("delete", key, err)
	}
	return nil
}

// Close releases the underlying client's connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
