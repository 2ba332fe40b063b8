package category

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListByHouse(ctx context.Context, houseID string) ([]Category, error)
	GetByID(ctx context.Context, houseID, categoryID string) (*Category, error)
	GetByName(ctx context.Context, houseID, name string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	UpdateName(ctx context.Context, categoryID, name string) error
	Delete(ctx context.Context, categoryID string) error

	CountProducts(ctx context.Context, categoryID string) (int64, error)
	// DetachProducts nulls the category reference on every product still
	// pointing at it.
	DetachProducts(ctx context.Context, categoryID string) error
}
