package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inodbandara-official/recommendation/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Minute

// Cache stores final ranked responses only. Similarity and graph structures
// are always rebuilt per request and never cached.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(userID string, limit int) string {
	return fmt.Sprintf("rec:user:%s:limit:%d", userID, limit)
}

// Get returns the cached recommendations for (user, limit), or found=false.
func (c *Cache) Get(ctx context.Context, userID string, limit int) ([]domain.ScoredEvent, bool, error) {
	key := buildKey(userID, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var recs []domain.ScoredEvent
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

func (c *Cache) Set(ctx context.Context, userID string, limit int, recs []domain.ScoredEvent) error {
	key := buildKey(userID, limit)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ClearUserCache drops every cached limit variant for the user. Called when
// the user's attendance changes.
func (c *Cache) ClearUserCache(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("rec:user:%s:limit:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
