package category

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// DeletePolicy picks what happens to products still referencing a deleted
// category. The app generations disagreed; both behaviors are kept.
type DeletePolicy string

const (
	// DeleteOrphan nulls the products' category reference.
	DeleteOrphan DeletePolicy = "orphan"
	// DeleteBlock refuses the delete while products reference the category.
	DeleteBlock DeletePolicy = "block"
)

type Service struct {
	repo   Repository
	policy DeletePolicy
}

func NewService(repo Repository, policy DeletePolicy) *Service {
	if policy != DeleteBlock {
		policy = DeleteOrphan
	}
	return &Service{repo: repo, policy: policy}
}

func (s *Service) ListByHouse(ctx context.Context, houseID string) ([]Category, error) {
	return s.repo.ListByHouse(ctx, houseID)
}

func (s *Service) Create(ctx context.Context, houseID, name string) ([]Category, error) {
	name = normalizeName(name)

	existing, err := s.repo.GetByName(ctx, houseID, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	c := Category{
		ID:      uuid.NewString(),
		Name:    name,
		HouseID: houseID,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, houseID)
}

func (s *Service) Update(ctx context.Context, houseID, categoryID, name string) ([]Category, error) {
	name = normalizeName(name)

	c, err := s.repo.GetByID(ctx, houseID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != c.Name {
		existing, err := s.repo.GetByName(ctx, houseID, name)
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != categoryID {
			return nil, ErrNameTaken
		}
	}

	if err := s.repo.UpdateName(ctx, categoryID, name); err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, houseID)
}

// Delete removes a category under the configured policy. Deleting a category
// never deletes its products: they are either detached or the delete is
// refused.
func (s *Service) Delete(ctx context.Context, houseID, categoryID string) ([]Category, error) {
	if _, err := s.repo.GetByID(ctx, houseID, categoryID); err != nil {
		return nil, err
	}

	if s.policy == DeleteBlock {
		count, err := s.repo.CountProducts(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategoryInUse
		}
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if s.policy == DeleteOrphan {
			if err := tx.DetachProducts(ctx, categoryID); err != nil {
				return err
			}
		}
		return tx.Delete(ctx, categoryID)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, houseID)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
