// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoadStatus describes the outcome of reading a persisted cart. Missing and
// Corrupt both hydrate to an empty cart; the distinction exists so callers
// can log the corrupt case without changing user-facing behavior.
type LoadStatus int

const (
	LoadFound LoadStatus = iota
	LoadMissing
	LoadCorrupt
)

// Store persists the cart line sequence under a fixed per-session key.
// Writes are synchronous write-through; Load never propagates a parse error.
type Store interface {
	Save(ctx context.Context, sessionID string, lines []Line) error
	Load(ctx context.Context, sessionID string) ([]Line, LoadStatus, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore implements Store with a JSON array serialization in Redis.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Save serializes the line sequence verbatim and writes it with the
// configured TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Load reads the stored serialized form. A missing key yields an empty
// sequence with LoadMissing; undecodable data yields an empty sequence with
// LoadCorrupt. Only transport failures return an error.
func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]Line, LoadStatus, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []Line{}, LoadMissing, nil
		}
		return nil, LoadMissing, fmt.Errorf("redis get cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return []Line{}, LoadCorrupt, nil
	}
	if lines == nil {
		lines = []Line{}
	}

	return lines, LoadFound, nil
}

// Delete removes the persisted cart. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
