package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMirror stores each entity kind as a Redis hash: field = natural key,
// value = the entity as JSON.
type RedisMirror struct {
	client *redis.Client
}

// NewRedisMirror creates a RedisMirror from a Redis URL.
func NewRedisMirror(redisURL string) (*RedisMirror, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisMirror{client: redis.NewClient(opts)}, nil
}

func (m *RedisMirror) Put(ctx context.Context, kind Kind, key string, entity any) error {
	b, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, key, err)
	}
	if err := m.client.HSet(ctx, hashKey(kind), key, b).Err(); err != nil {
		return fmt.Errorf("mirror %s %s: %w", kind, key, err)
	}
	return nil
}

// Get reads one mirrored document back, mainly for verification and tooling.
func (m *RedisMirror) Get(ctx context.Context, kind Kind, key string) ([]byte, bool, error) {
	b, err := m.client.HGet(ctx, hashKey(kind), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s %s: %w", kind, key, err)
	}
	return b, true, nil
}

func (m *RedisMirror) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *RedisMirror) Close() error {
	return m.client.Close()
}

func hashKey(kind Kind) string {
	return fmt.Sprintf("mirror:%s", kind)
}
