package house

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// bootstrapHouseName is the house auto-created for the very first account.
const bootstrapHouseName = "First home"

const defaultCurrency = "EUR"

// UserDirectory is the slice of the user domain the membership admin needs.
type UserDirectory interface {
	// EnsureUser returns the id of the user with the given email, creating
	// a passwordless account when the email is new.
	EnsureUser(ctx context.Context, email, name string) (string, error)
	UpdateName(ctx context.Context, userID, name string) error
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]House, error) {
	return s.repo.ListHousesByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, houseID string) (*House, error) {
	return s.repo.GetHouse(ctx, houseID)
}

// RoleFor resolves the actor's role within a house. ErrHouseNotFound when
// the house id does not resolve, ErrNotMember when it does but the user has
// no membership; every gate funnels through this plus Role.AtLeast.
func (s *Service) RoleFor(ctx context.Context, houseID, userID string) (Role, error) {
	if _, err := s.repo.GetHouse(ctx, houseID); err != nil {
		return "", err
	}

	membership, err := s.repo.GetMembership(ctx, houseID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return membership.Role, nil
}

// Create makes a new house and its OWNER membership in one transaction.
func (s *Service) Create(ctx context.Context, ownerID, name, currency string) (*House, error) {
	name = strings.TrimSpace(name)
	currency = normalizeCurrency(currency)

	var result House
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetHouseByName(ctx, name)
		if err != nil && !errors.Is(err, ErrHouseNotFound) {
			return err
		}
		if existing != nil {
			return ErrNameTaken
		}

		h := House{
			ID:       uuid.NewString(),
			Name:     name,
			Currency: currency,
			OwnerID:  ownerID,
		}
		if err := tx.CreateHouse(ctx, &h); err != nil {
			return err
		}

		membership := Membership{
			ID:      uuid.NewString(),
			UserID:  ownerID,
			HouseID: h.ID,
			Role:    RoleOwner,
		}
		if err := tx.AddMembership(ctx, &membership); err != nil {
			return err
		}

		result = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Bootstrap provisions the seed user's auto-created house. It is a no-op
// for users who already belong to a house, so callers run it on every
// successful authenticate; a first login that committed the user but failed
// to provision the house is retried on the next one. ErrNameTaken is
// swallowed: a houseless returning user must not be locked out of login
// because the bootstrap name is already in use.
func (s *Service) Bootstrap(ctx context.Context, ownerID string) error {
	houses, err := s.repo.ListHousesByUser(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(houses) > 0 {
		return nil
	}

	if _, err := s.Create(ctx, ownerID, bootstrapHouseName, defaultCurrency); err != nil && !errors.Is(err, ErrNameTaken) {
		return err
	}
	return nil
}

func (s *Service) Update(ctx context.Context, houseID, name, currency string) (*House, error) {
	name = strings.TrimSpace(name)

	h, err := s.repo.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	if name != h.Name {
		existing, err := s.repo.GetHouseByName(ctx, name)
		if err != nil && !errors.Is(err, ErrHouseNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != houseID {
			return nil, ErrNameTaken
		}
	}

	if currency == "" {
		currency = h.Currency
	} else {
		currency = normalizeCurrency(currency)
	}

	if err := s.repo.UpdateHouse(ctx, houseID, name, currency); err != nil {
		return nil, err
	}

	h.Name = name
	h.Currency = currency
	return h, nil
}

// Delete removes the house and everything it owns. The cascade runs in a
// single transaction so a failure never leaves orphaned rows behind.
func (s *Service) Delete(ctx context.Context, houseID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetHouse(ctx, houseID); err != nil {
			return err
		}
		if err := tx.DeleteShoppingListByHouse(ctx, houseID); err != nil {
			return err
		}
		if err := tx.DeleteProductsByHouse(ctx, houseID); err != nil {
			return err
		}
		if err := tx.DeleteCategoriesByHouse(ctx, houseID); err != nil {
			return err
		}
		if err := tx.DeleteMembershipsByHouse(ctx, houseID); err != nil {
			return err
		}
		return tx.DeleteHouse(ctx, houseID)
	})
}

func (s *Service) ListMembers(ctx context.Context, houseID string) ([]Member, error) {
	return s.repo.ListMembers(ctx, houseID)
}

// InviteMember adds a user to a house, creating the account when the email
// is new. The OWNER role is never assignable through invites.
func (s *Service) InviteMember(ctx context.Context, houseID, email, name string, role Role) ([]Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == RoleOwner {
		return nil, ErrOwnerNotAssignable
	}

	userID, err := s.users.EnsureUser(ctx, email, name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMembership(ctx, houseID, userID)
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	membership := Membership{
		ID:      uuid.NewString(),
		UserID:  userID,
		HouseID: houseID,
		Role:    role,
	}
	if err := s.repo.AddMembership(ctx, &membership); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, houseID)
}

// UpdateMember changes a member's role and display name. The OWNER
// membership is immutable, and OWNER is not assignable, even though the
// role value itself passes enum validation.
func (s *Service) UpdateMember(ctx context.Context, houseID, membershipID, name string, role Role) ([]Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	membership, err := s.repo.GetMembershipByID(ctx, houseID, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.Role == RoleOwner {
		return nil, ErrOwnerImmutable
	}
	if role == RoleOwner {
		return nil, ErrOwnerNotAssignable
	}

	if name = strings.TrimSpace(name); name != "" {
		if err := s.users.UpdateName(ctx, membership.UserID, name); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateMembershipRole(ctx, membershipID, role); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, houseID)
}

// RemoveMember deletes a membership. The OWNER membership cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, houseID, membershipID string) ([]Member, error) {
	membership, err := s.repo.GetMembershipByID(ctx, houseID, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.Role == RoleOwner {
		return nil, ErrOwnerImmutable
	}

	if err := s.repo.DeleteMembership(ctx, membershipID); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, houseID)
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
