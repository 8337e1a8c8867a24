// Package redis — хранилище в Redis (driver=redis), общее для нескольких
// экземпляров клиента на одной машине.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/opensource-sharing/internal/storage"
)

const defaultPrefix = "ossclient:"

type Storage struct {
	rdb    *redis.Client
	prefix string
}

var _ storage.KV = (*Storage)(nil)

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "ossclient:".
func New(ctx context.Context, redisURL, prefix string) (*Storage, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = defaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{rdb: rdb, prefix: prefix}, nil
}

func (s *Storage) key(k string) string { return s.prefix + k }

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return v, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

func (s *Storage) Close() error { return s.rdb.Close() }
