// Package cache holds the optional Redis cache for per-game rating
// aggregates. The server runs without it; a nil *RatingCache is a no-op
// on every method.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// entryTTL bounds staleness if an invalidation is ever missed.
const entryTTL = 5 * time.Minute

// RatingCache caches {averageRating, reviewCount} per game id.
type RatingCache struct {
	client *redis.Client
}

// Ratings is the process-wide cache instance. Nil until Connect succeeds.
var Ratings *RatingCache

type entry struct {
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int64    `json:"reviewCount"`
}

// Connect establishes the Redis connection and installs the global cache.
func Connect(addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}

	Ratings = &RatingCache{client: client}
	log.Println("Rating cache connected.")
	return nil
}

// Close closes the Redis connection.
func (c *RatingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RatingCache) key(gameID uint) string {
	return fmt.Sprintf("game:%d:rating", gameID)
}

// Get returns the cached aggregate for a game. ok is false on a miss, on
// any Redis error, or when the cache is disabled.
func (c *RatingCache) Get(ctx context.Context, gameID uint) (avg *float64, count int64, ok bool) {
	if c == nil {
		return nil, 0, false
	}

	raw, err := c.client.Get(ctx, c.key(gameID)).Result()
	if err != nil {
		return nil, 0, false
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, 0, false
	}
	return e.AverageRating, e.ReviewCount, true
}

// Set stores the aggregate for a game. Errors are logged and swallowed;
// the cache is an optimization, never a source of truth.
func (c *RatingCache) Set(ctx context.Context, gameID uint, avg *float64, count int64) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(entry{AverageRating: avg, ReviewCount: count})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(gameID), raw, entryTTL).Err(); err != nil {
		log.Printf("rating cache set failed for game %d: %v", gameID, err)
	}
}

// Invalidate drops the cached aggregate after any review mutation.
func (c *RatingCache) Invalidate(ctx context.Context, gameID uint) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(gameID)).Err(); err != nil {
		log.Printf("rating cache invalidate failed for game %d: %v", gameID, err)
	}
}
