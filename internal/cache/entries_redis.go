package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurantscorer/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey = "scorer:entries:version"
	keyPrefix  = "scorer:entries"
)

// EntryCache stores recent-entry listings keyed by a version counter.
// Bumping the version retires every listing stored under an older one.
type EntryCache interface {
	Version(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	GetRecent(ctx context.Context, version int64, limit int) ([]models.ScoreEntry, bool, error)
	SetRecent(ctx context.Context, version int64, limit int, entries []models.ScoreEntry) error
	Close() error
}

type RedisEntryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEntryCache connects to redisURL (redis://host:port/db) and verifies
// the connection.
func NewRedisEntryCache(redisURL, password string, ttl time.Duration) (*RedisEntryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisEntryCache{client: rdb, ttl: ttl}, nil
}

func recentKey(version int64, limit int) string {
	return fmt.Sprintf("%s:v%d:limit%d", keyPrefix, version, limit)
}

// Version returns 0 until the first Bump
func (c *RedisEntryCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisEntryCache) Bump(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey).Err()
}

func (c *RedisEntryCache) GetRecent(ctx context.Context, version int64, limit int) ([]models.ScoreEntry, bool, error) {
	raw, err := c.client.Get(ctx, recentKey(version, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []models.ScoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode cached entries: %w", err)
	}
	return entries, true, nil
}

func (c *RedisEntryCache) SetRecent(ctx context.Context, version int64, limit int, entries []models.ScoreEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return c.client.Set(ctx, recentKey(version, limit), raw, c.ttl).Err()
}

func (c *RedisEntryCache) Close() error {
	return c.client.Close()
}
