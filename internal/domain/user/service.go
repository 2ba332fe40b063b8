package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"home-inventory-go/internal/auth"
)

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &Service{repo: repo, cache: cache}
}

// Authenticate verifies credentials. When the store holds no users at all,
// the call bootstraps the sole seed account instead; the returned flag tells
// the caller to provision the seed user's first house.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, bool, error) {
	email = normalizeEmail(email)

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}

	if count == 0 {
		u, err := s.createWithPassword(ctx, email, password)
		if err != nil {
			return nil, false, err
		}
		return u, true, nil
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, false, ErrInvalidCredentials
		}
		return nil, false, err
	}

	if u.PasswordHash == nil || !auth.ComparePassword(*u.PasswordHash, password) {
		return nil, false, ErrInvalidCredentials
	}

	return u, false, nil
}

// Resolve maps a verified token's user id to the full profile, reading
// through the cache. A valid token whose user no longer exists evicts any
// stale entry and reports ErrUserNotFound.
func (s *Service) Resolve(ctx context.Context, userID string) (*User, error) {
	if cached, ok := s.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.cache.Delete(ctx, userID)
		}
		return nil, err
	}

	s.cache.Set(ctx, u)
	return u, nil
}

// ChangePassword rotates credentials. The confirmation match is a bespoke
// cross-field check; the schema validator only covers single fields.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.PasswordHash != nil && !auth.ComparePassword(*u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePasswordHash(ctx, userID, hash)
}

// EnsureUser returns the id for an email, creating a passwordless account
// when the email is new. Backs the member-invite flow.
func (s *Service) EnsureUser(ctx context.Context, email, name string) (string, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	u := User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  strings.TrimSpace(name),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return "", err
	}

	return u.ID, nil
}

func (s *Service) UpdateName(ctx context.Context, userID, name string) error {
	return s.repo.UpdateName(ctx, userID, strings.TrimSpace(name))
}

func (s *Service) createWithPassword(ctx context.Context, email, password string) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         nameFromEmail(email),
		PasswordHash: &hash,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nameFromEmail(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}
