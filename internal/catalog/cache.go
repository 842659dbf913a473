package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lookuper is the catalog surface the resolver and the entry form depend on.
type Lookuper interface {
	LookupISBN(ctx context.Context, code string) (*Volume, error)
	SearchByCategory(ctx context.Context, category string) ([]VolumeInfo, error)
}

// CachedLookuper keeps successful ISBN lookups in Redis. Misses and errors
// are never cached. A nil client turns it into a pass-through.
type CachedLookuper struct {
	next   Lookuper
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisClient connects to the Redis server at redisURL and verifies the
// connection.
func NewRedisClient(redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// NewCachedLookuper wraps next with a Redis cache.
func NewCachedLookuper(next Lookuper, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedLookuper {
	return &CachedLookuper{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog-cache"),
	}
}

func cacheKey(code string) string {
	return "bookscan:isbn:" + code
}

// LookupISBN serves from the cache when possible.
func (c *CachedLookuper) LookupISBN(ctx context.Context, code string) (*Volume, error) {
	if c.client == nil {
		return c.next.LookupISBN(ctx, code)
	}

	raw, err := c.client.Get(ctx, cacheKey(code)).Bytes()
	switch {
	case err == nil:
		var vol Volume
		if jerr := json.Unmarshal(raw, &vol); jerr == nil {
			c.logger.Debug("cache hit", "code", code)
			return &vol, nil
		}
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", "code", code, "error", err)
	}

	vol, err := c.next.LookupISBN(ctx, code)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(vol); jerr == nil {
		if serr := c.client.Set(ctx, cacheKey(code), data, c.ttl).Err(); serr != nil {
			c.logger.Warn("cache write failed", "code", code, "error", serr)
		}
	}
	return vol, nil
}

// SearchByCategory is not cached.
func (c *CachedLookuper) SearchByCategory(ctx context.Context, category string) ([]VolumeInfo, error) {
	return c.next.SearchByCategory(ctx, category)
}
