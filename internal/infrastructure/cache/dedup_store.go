package cache

import (
	"context"
	"fmt"
	"time"

	"commerce-adapter-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisDedupStore remembers recently seen webhook delivery keys in Redis so
// that platform retries of the same delivery do not produce duplicate
// canonical events. Suitable for multi-instance deployments sharing one
// Redis.
type RedisDedupStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDedupStore creates a dedup store on an existing Redis client.
func NewRedisDedupStore(client *redis.Client, keyPrefix string) *RedisDedupStore {
	if keyPrefix == "" {
		keyPrefix = "webhook:dedup:"
	}
	return &RedisDedupStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Seen marks the key with a TTL and reports whether it was already present.
// SETNX makes mark-and-check a single atomic operation.
func (s *RedisDedupStore) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	set, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark webhook delivery: %w", err)
	}
	return !set, nil
}

var _ ports.DedupStore = (*RedisDedupStore)(nil)
