package inmemory

import (
	"context"
	"sync"

	userdomain "home-inventory-go/internal/domain/user"
)

// UserCache is a process-local stand-in for the redis user cache, used in
// development and tests. Like the redis implementation it holds entries
// without a TTL.
type UserCache struct {
	mu    sync.RWMutex
	items map[string]userdomain.User
}

func NewUserCache() *UserCache {
	return &UserCache{items: make(map[string]userdomain.User)}
}

func (c *UserCache) Get(ctx context.Context, userID string) (*userdomain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.items[userID]
	if !ok {
		return nil, false
	}
	copied := u
	return &copied, true
}

func (c *UserCache) Set(ctx context.Context, u *userdomain.User) {
	if u == nil {
		return
	}
	c.mu.Lock()
	c.items[u.ID] = *u
	c.mu.Unlock()
}

func (c *UserCache) Delete(ctx context.Context, userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}
