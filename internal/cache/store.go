// Package cache stores DEXTools responses in Redis so repeated tool calls
// within the TTL do not spend API quota.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dextools:"

// Store reads and writes cached responses in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a PING.
func New(redisURL string, redisPassword string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	// Parse Redis URL
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if redisPassword != "" {
		opt.Password = redisPassword
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Store{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "response_cache"),
	}, nil
}

// Get returns the cached response for key. A missing key is reported as
// ok=false with no error.
func (s *Store) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	cacheKey := keyPrefix + key

	jsonBytes, err := s.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis GET failed: %w", err)
	}

	var value map[string]any
	if err := json.Unmarshal(jsonBytes, &value); err != nil {
		return nil, false, fmt.Errorf("json unmarshal failed: %w", err)
	}

	s.logger.Debug("cache_hit", "cache_key", cacheKey, "size_bytes", len(jsonBytes))

	return value, true, nil
}

// Set stores value under key with the configured TTL.
func (s *Store) Set(ctx context.Context, key string, value map[string]any) error {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}

	cacheKey := keyPrefix + key
	if err := s.client.Set(ctx, cacheKey, jsonBytes, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}

	s.logger.Debug("response_cached",
		"cache_key", cacheKey,
		"ttl_sec", s.ttl.Seconds(),
		"size_bytes", len(jsonBytes),
	)

	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
