package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"thewall/internal/model"
)

const (
	// WallCacheKey holds the JSON snapshot of the whole wall.
	WallCacheKey = "wall:snapshot"

	// WallGenerationKey is bumped by every invalidation.
	WallGenerationKey = "wall:generation"
)

// ErrStaleSnapshot is returned by Set when the wall changed after the
// caller read the generation. Nothing is stored.
var ErrStaleSnapshot = errors.New("wall snapshot is stale")

// WallCache defines the interface for wall snapshot operations.
//
// Readers call Generation before loading the wall from the database and hand
// the value back to Set, so a snapshot loaded before a write can never
// overwrite that write's invalidation.
type WallCache interface {
	// Get returns the cached wall. found is false on a miss.
	Get(ctx context.Context) (posts []model.Post, found bool, err error)

	// Generation returns the current invalidation counter.
	Generation(ctx context.Context) (int64, error)

	// Set stores a snapshot with the configured TTL if the generation is
	// still gen. Otherwise it returns ErrStaleSnapshot.
	Set(ctx context.Context, gen int64, posts []model.Post) error

	// Invalidate bumps the generation and drops the snapshot.
	Invalidate(ctx context.Context) error
}

// RedisWallCache implements WallCache with a snapshot key guarded by a
// generation counter.
type RedisWallCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWallCache creates a new WallCache backed by Redis.
func NewWallCache(client *redis.Client, ttl time.Duration) WallCache {
	return &RedisWallCache{client: client, ttl: ttl}
}

func (c *RedisWallCache) Get(ctx context.Context) ([]model.Post, bool, error) {
	data, err := c.client.Get(ctx, WallCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get wall snapshot: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false, fmt.Errorf("decode wall snapshot: %w", err)
	}
	return posts, true, nil
}

func (c *RedisWallCache) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, c.client)
}

// Set runs under WATCH on the generation key, so an Invalidate landing
// between the check and the write aborts the transaction.
func (c *RedisWallCache) Set(ctx context.Context, gen int64, posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode wall snapshot: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return ErrStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, WallCacheKey, data, c.ttl)
			return nil
		})
		return err
	}, WallGenerationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		return ErrStaleSnapshot
	default:
		return fmt.Errorf("set wall snapshot: %w", err)
	}
}

func (c *RedisWallCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, WallGenerationKey)
		pipe.Del(ctx, WallCacheKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate wall snapshot: %w", err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, c getter) (int64, error) {
	gen, err := c.Get(ctx, WallGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get wall generation: %w", err)
	}
	return gen, nil
}
