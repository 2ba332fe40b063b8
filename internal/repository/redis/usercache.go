package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/pkg/logger"
)

const userKeyPrefix = "user:"

// UserCache is the redis-backed implementation of the session resolver's
// read-through cache. Entries are written without a TTL and nothing evicts
// them when the user or their roles change; see userdomain.Cache for why
// that gap is kept. The cache is best-effort: every error degrades to a miss.
type UserCache struct {
	client *redis.Client
	log    logger.Logger
}

func NewUserCache(client *redis.Client, log logger.Logger) *UserCache {
	return &UserCache{client: client, log: log}
}

func (c *UserCache) Get(ctx context.Context, userID string) (*userdomain.User, bool) {
	raw, err := c.client.Get(ctx, userKeyPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("usercache: get failed", "user_id", userID, "err", err)
		}
		return nil, false
	}

	var u userdomain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		c.log.Warn("usercache: corrupt entry, evicting", "user_id", userID, "err", err)
		c.Delete(ctx, userID)
		return nil, false
	}

	return &u, true
}

func (c *UserCache) Set(ctx context.Context, u *userdomain.User) {
	data, err := json.Marshal(u)
	if err != nil {
		c.log.Warn("usercache: marshal failed", "user_id", u.ID, "err", err)
		return
	}

	// Expiration 0: no TTL, matching the system this replaces.
	if err := c.client.Set(ctx, userKeyPrefix+u.ID, data, 0).Err(); err != nil {
		c.log.Warn("usercache: set failed", "user_id", u.ID, "err", err)
	}
}

func (c *UserCache) Delete(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, userKeyPrefix+userID).Err(); err != nil {
		c.log.Warn("usercache: delete failed", "user_id", userID, "err", err)
	}
}
