// Package redis provides a Redis-backed HistoryStore.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/supportagent/store"
)

// RedisHistoryStore implements store.HistoryStore using Redis.
type RedisHistoryStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.HistoryStore = (*RedisHistoryStore)(nil)

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "supportagent:"
	TTL      time.Duration // Expiration for histories, default 0 (no expiration)
}

// NewRedisHistoryStore creates a new Redis history store
func NewRedisHistoryStore(opts RedisOptions) *RedisHistoryStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "supportagent:"
	}

	return &RedisHistoryStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisHistoryStore) historyKey(threadID string) string {
	return fmt.Sprintf("%shistory:%s", s.prefix, threadID)
}

// Save stores the full message history for a thread
func (s *RedisHistoryStore) Save(ctx context.Context, threadID string, messages []llms.MessageContent) error {
	data, err := store.EncodeMessages(messages)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := s.client.Set(ctx, s.historyKey(threadID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save history to redis: %w", err)
	}

	return nil
}

// Load retrieves the message history for a thread
func (s *RedisHistoryStore) Load(ctx context.Context, threadID string) ([]llms.MessageContent, error) {
	data, err := s.client.Get(ctx, s.historyKey(threadID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load history from redis: %w", err)
	}

	return store.DecodeMessages(data)
}

// Delete removes the history for a thread
func (s *RedisHistoryStore) Delete(ctx context.Context, threadID string) error {
	if err := s.client.Del(ctx, s.historyKey(threadID)).Err(); err != nil {
		return fmt.Errorf("failed to delete history from redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisHistoryStore) Close() error {
	return s.client.Close()
}
