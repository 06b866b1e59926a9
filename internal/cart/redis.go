package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"flamegold-ordering/internal/domain"
)

// RedisStorage keeps each session's cart as a JSON list under one key.
// Carts are durable state, not a cache, so entries carry no TTL.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, storageKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		// An unreadable cart is treated as empty; drop the bad value so it
		// does not resurface on the next load.
		_ = r.client.Del(ctx, storageKey(key)).Err()
		return nil, nil
	}
	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, storageKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, storageKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storageKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
