package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisCandidateCache stores candidate lists as JSON strings with a TTL.
type RedisCandidateCache struct {
	client *redis.Client
}

func NewRedisCandidateCache(client *redis.Client) *RedisCandidateCache {
	return &RedisCandidateCache{client: client}
}

// Connect creates a client for addr and verifies it with PING.
func Connect(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connect %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisCandidateCache) Get(ctx context.Context, key string) (_ []domain.CandidateDestination, _ bool, err error) {
	defer obs.Time(ctx, "candidates.cache.redis.Get")(&err)

	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis candidate cache get %q: %w", key, err)
	}

	out, err := decodeCandidates(b)
	if err != nil {
		return nil, false, fmt.Errorf("redis candidate cache get %q: %w", key, err)
	}
	return out, true, nil
}

func (c *RedisCandidateCache) Set(ctx context.Context, key string, candidates []domain.CandidateDestination, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "candidates.cache.redis.Set")(&err)

	b, err := encodeCandidates(candidates)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis candidate cache set %q: %w", key, err)
	}
	return nil
}
