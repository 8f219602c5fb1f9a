package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session records in the shared store.
const DefaultKeyPrefix = "session:"

// RedisStore persists session records as JSON values with a server-side
// TTL, so abandoned sessions expire without application cleanup. One call
// per operation, no inline retries: transport-level resilience belongs to
// the client configuration.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store backed by the given Redis client. An empty
// prefix falls back to DefaultKeyPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get retrieves and decodes the record for id. An absent key and a corrupt
// payload both report ErrNotFound: a record we cannot read is a record we
// do not have.
func (s *RedisStore) Get(ctx context.Context, id string) (map[string]any, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, ErrNotFound
	}

	return data, nil
}

// Set overwrites the record for id and resets its TTL.
func (s *RedisStore) Set(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: marshal record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

// Delete removes the record for id. Deleting an absent key succeeds.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
