package consent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "consent"

// RedisOptions configures RedisStore.
type RedisOptions struct {
	Prefix string
	TTL    time.Duration // zero keeps records without expiry
}

// RedisStore records decisions per visitor so they can be audited.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps a redis client.
func NewRedisStore(client redis.Cmdable, opts RedisOptions) *RedisStore {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: opts.TTL}
}

// Client exposes the underlying client so callers can close it.
func (s *RedisStore) Client() redis.Cmdable { return s.client }

// For returns the Store scoped to one visitor.
func (s *RedisStore) For(visitorID string) Store {
	return &visitorStore{parent: s, visitor: visitorID}
}

func (s *RedisStore) key(visitor, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, visitor, key)
}

type visitorStore struct {
	parent  *RedisStore
	visitor string
}

func (v *visitorStore) Get(ctx context.Context, key string) (string, error) {
	val, err := v.parent.client.Get(ctx, v.parent.key(v.visitor, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("consent: redis get: %w", err)
	}
	return val, nil
}

func (v *visitorStore) Set(ctx context.Context, key, value string) error {
	if err := v.parent.client.Set(ctx, v.parent.key(v.visitor, key), value, v.parent.ttl).Err(); err != nil {
		return fmt.Errorf("consent: redis set: %w", err)
	}
	return nil
}
