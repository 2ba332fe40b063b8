package product

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListByHouse(ctx context.Context, houseID string) ([]Product, error)
	GetByID(ctx context.Context, houseID, productID string) (*Product, error)
	GetByName(ctx context.Context, houseID, name string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, houseID, productID string) error

	// Category references live in the same store so the import batch can
	// resolve and create them inside one transaction.
	ListCategoryRefs(ctx context.Context, houseID string) ([]CategoryRef, error)
	GetCategoryRefByName(ctx context.Context, houseID, name string) (*CategoryRef, error)
	CreateCategoryRef(ctx context.Context, houseID string, ref *CategoryRef) error
}
