package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "conversation:"

// RedisStore is a Store backed by Redis, for running more than one webhook
// instance. TTLs map directly onto key expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore from a redis URL.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get returns the state for a phone key.
func (s *RedisStore) Get(ctx context.Context, phone string) (State, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+phone).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, ErrStateNotFound
		}
		return State{}, err
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// Put stores the state with an optional expiry.
func (s *RedisStore) Put(ctx context.Context, state State, ttl time.Duration) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, redisKeyPrefix+state.Phone, raw, ttl).Err()
}

// Delete removes the state for a phone key. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, redisKeyPrefix+phone).Err()
}

// List scans all conversation keys and returns their states. Entries that
// expire mid-scan are skipped.
func (s *RedisStore) List(ctx context.Context) ([]State, error) {
	var out []State
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var state State
		if err := json.Unmarshal(raw, &state); err != nil {
			continue
		}
		out = append(out, state)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Store = (*RedisStore)(nil)
