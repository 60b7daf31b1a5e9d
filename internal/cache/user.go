package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sclub/calendar/internal/model"
)

// userTTL bounds how stale a cached user row may get. Admin-flag changes and
// deletions also invalidate eagerly, so this is only a backstop.
const userTTL = 60 * time.Second

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser returns the cached user row, or (nil, nil) on a miss or when the
// cache is disabled.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if !c.Enabled() {
		return nil, nil
	}

	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &user, nil
}

// SetUser stores a user row with the cache TTL. No-op when disabled.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	if !c.Enabled() || user == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return c.client.Set(ctx, userKey(user.ID), data, userTTL).Err()
}

// DeleteUser evicts a user row, e.g. after an admin-flag change or account
// deletion. No-op when disabled.
func (c *Cache) DeleteUser(ctx context.Context, id int64) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, userKey(id)).Err()
}
