package user

import "context"

// Cache is the best-effort read accelerator for the session resolver's
// user-by-id lookup. It is never authoritative: resolvers fall back to the
// store on any miss or decode failure.
//
// Entries carry no TTL and are not invalidated when a user or role is
// mutated, matching the system this replaces. A demoted user keeps their
// cached identity until the entry is evicted by other means. Known staleness
// gap, flagged for product review rather than silently fixed.
type Cache interface {
	Get(ctx context.Context, userID string) (*User, bool)
	Set(ctx context.Context, u *User)
	Delete(ctx context.Context, userID string)
}

type noopCache struct{}

// NewNoopCache returns a Cache that never hits; used when redis is disabled.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*User, bool) {
	return nil, false
}

func (noopCache) Set(context.Context, *User) {}

func (noopCache) Delete(context.Context, string) {}
