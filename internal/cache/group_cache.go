package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"splitmate/internal/model"
)

// GroupCache keeps a short-lived copy of each user's group list in Redis.
// Group creation invalidates the owner's entry; everything else rides the TTL.
type GroupCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewGroupCache(client *redisv9.Client, ttl time.Duration) *GroupCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &GroupCache{client: client, ttl: ttl}
}

func (c *GroupCache) GetGroups(ctx context.Context, userID uint) ([]model.Group, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get groups failed: %w", err)
	}

	var groups []model.Group
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached groups failed: %w", err)
	}
	return groups, true, nil
}

func (c *GroupCache) SetGroups(ctx context.Context, userID uint, groups []model.Group) error {
	payload, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("marshal groups cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set groups failed: %w", err)
	}
	return nil
}

func (c *GroupCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete groups failed: %w", err)
	}
	return nil
}

func (c *GroupCache) key(userID uint) string {
	return fmt.Sprintf("groups:user:%d", userID)
}
