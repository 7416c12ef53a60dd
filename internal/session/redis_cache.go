package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	userroledomain "testplatform/backend/internal/userrole/domain"
)

// RoleCache stores a user's role bindings between requests.
type RoleCache interface {
	// Get returns the cached bindings and true, or false on a miss.
	Get(ctx context.Context, userID string) ([]userroledomain.UserRole, bool, error)
	Set(ctx context.Context, userID string, roles []userroledomain.UserRole) error
	Delete(ctx context.Context, userID string) error
}

const defaultRoleCacheTTL = 5 * time.Minute

type cachedRole struct {
	ID         string `json:"id"`
	RoleID     string `json:"role_id"`
	SourceID   string `json:"source_id"`
	CreateTime int64  `json:"create_time"`
	UpdateTime int64  `json:"update_time"`
}

// RedisCache implements RoleCache with one JSON value per user under a key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient parses redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCache returns a RoleCache on client. A non-positive ttl uses five minutes.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultRoleCacheTTL
	}
	return &RedisCache{client: client, prefix: "session:roles:", ttl: ttl}
}

func (c *RedisCache) key(userID string) string {
	return c.prefix + userID
}

// Get returns the cached bindings for userID.
func (c *RedisCache) Get(ctx context.Context, userID string) ([]userroledomain.UserRole, bool, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached roles: %w", err)
	}
	var cached []cachedRole
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached roles: %w", err)
	}
	roles := make([]userroledomain.UserRole, 0, len(cached))
	for _, r := range cached {
		roles = append(roles, userroledomain.UserRole{
			ID:         r.ID,
			UserID:     userID,
			RoleID:     r.RoleID,
			SourceID:   r.SourceID,
			CreateTime: r.CreateTime,
			UpdateTime: r.UpdateTime,
		})
	}
	return roles, true, nil
}

// Set caches roles for userID with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, userID string, roles []userroledomain.UserRole) error {
	cached := make([]cachedRole, 0, len(roles))
	for _, r := range roles {
		cached = append(cached, cachedRole{
			ID:         r.ID,
			RoleID:     r.RoleID,
			SourceID:   r.SourceID,
			CreateTime: r.CreateTime,
			UpdateTime: r.UpdateTime,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal roles: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache roles: %w", err)
	}
	return nil
}

// Delete removes the cached bindings for userID. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached roles: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
