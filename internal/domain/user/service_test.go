package user

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeUserRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return nil
}

func (r *fakeUserRepo) UpdateName(ctx context.Context, userID, name string) error {
	u, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Name = name
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = &hash
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type mapCache struct {
	mu    sync.Mutex
	items map[string]*User
	gets  int
	hits  int
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]*User)}
}

func (c *mapCache) Get(ctx context.Context, userID string) (*User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	u, ok := c.items[userID]
	if ok {
		c.hits++
	}
	return u, ok
}

func (c *mapCache) Set(ctx context.Context, u *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *u
	c.items[u.ID] = &copied
}

func (c *mapCache) Delete(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
}

func TestAuthenticateBootstrapsFirstUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	u, bootstrapped, err := svc.Authenticate(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !bootstrapped {
		t.Fatal("expected first authenticate to bootstrap")
	}
	if u.Email != "a@b.com" {
		t.Fatalf("email = %q", u.Email)
	}
	if count, _ := repo.Count(ctx); count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}

	// Second call with the right password authenticates the same account.
	again, bootstrapped, err := svc.Authenticate(ctx, "a@b.com", "longenough")
	if err != nil || bootstrapped {
		t.Fatalf("re-authenticate: %v (bootstrapped=%v)", err, bootstrapped)
	}
	if again.ID != u.ID {
		t.Fatal("re-authenticate returned a different user")
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, _, err := svc.Authenticate(ctx, "a@b.com", "longenough"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, "a@b.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, "other@b.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateInvitedUserWithoutPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, _, err := svc.Authenticate(ctx, "a@b.com", "longenough"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := svc.EnsureUser(ctx, "invited@b.com", "Invited"); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, "invited@b.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("passwordless account must not authenticate, got %v", err)
	}
}

func TestResolveReadThrough(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newMapCache()
	svc := NewService(repo, cache)
	ctx := context.Background()

	u, _, err := svc.Authenticate(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	first, err := svc.Resolve(ctx, u.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cache.hits != 0 {
		t.Fatal("first resolve should miss the cache")
	}

	second, err := svc.Resolve(ctx, u.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("second resolve should hit the cache, hits=%d", cache.hits)
	}
	if first.ID != second.ID || first.Email != second.Email {
		t.Fatal("cache returned a different user")
	}
}

func TestResolveVanishedUserEvictsCache(t *testing.T) {
	repo := newFakeUserRepo()
	cache := newMapCache()
	svc := NewService(repo, cache)
	ctx := context.Background()

	u, _, err := svc.Authenticate(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := svc.Resolve(ctx, u.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// User deleted out from under a still-valid token.
	delete(repo.byID, u.ID)
	delete(repo.byEmail, u.Email)
	cache.Delete(ctx, u.ID)

	if _, err := svc.Resolve(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, ok := cache.items[u.ID]; ok {
		t.Fatal("stale cache entry should be evicted")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	u, _, err := svc.Authenticate(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "longenough", "newpassword", "different"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.ChangePassword(ctx, u.ID, "wrongold", "newpassword", "newpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, u.ID, "longenough", "newpassword", "newpassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Authenticate(ctx, "a@b.com", "newpassword"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, _, err := svc.Authenticate(ctx, "a@b.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, "X@Example.com", "X")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := svc.EnsureUser(ctx, "x@example.com", "X Again")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first != second {
		t.Fatal("EnsureUser created a duplicate for the same email")
	}
}
