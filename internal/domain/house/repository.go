package house

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetHouse(ctx context.Context, houseID string) (*House, error)
	GetHouseByName(ctx context.Context, name string) (*House, error)
	ListHousesByUser(ctx context.Context, userID string) ([]House, error)
	CreateHouse(ctx context.Context, h *House) error
	UpdateHouse(ctx context.Context, houseID, name, currency string) error
	DeleteHouse(ctx context.Context, houseID string) error

	GetMembership(ctx context.Context, houseID, userID string) (*Membership, error)
	GetMembershipByID(ctx context.Context, houseID, membershipID string) (*Membership, error)
	ListMembers(ctx context.Context, houseID string) ([]Member, error)
	AddMembership(ctx context.Context, m *Membership) error
	UpdateMembershipRole(ctx context.Context, membershipID string, role Role) error
	DeleteMembership(ctx context.Context, membershipID string) error
	DeleteMembershipsByHouse(ctx context.Context, houseID string) error

	// Cascade targets owned by a house; used by the atomic house delete.
	DeleteProductsByHouse(ctx context.Context, houseID string) error
	DeleteCategoriesByHouse(ctx context.Context, houseID string) error
	DeleteShoppingListByHouse(ctx context.Context, houseID string) error
}
