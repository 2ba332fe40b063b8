package house

import (
	"context"
	"errors"

	"gorm.io/gorm"
	housedomain "home-inventory-go/internal/domain/house"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(housedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetHouse(ctx context.Context, houseID string) (*housedomain.House, error) {
	var h housedomain.House
	if err := r.db.WithContext(ctx).Where("id = ?", houseID).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housedomain.ErrHouseNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) GetHouseByName(ctx context.Context, name string) (*housedomain.House, error) {
	var h housedomain.House
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housedomain.ErrHouseNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) ListHousesByUser(ctx context.Context, userID string) ([]housedomain.House, error) {
	var houses []housedomain.House
	err := r.db.WithContext(ctx).
		Table("houses").
		Joins("join memberships on memberships.house_id = houses.id").
		Where("memberships.user_id = ?", userID).
		Order("houses.created_at asc").
		Find(&houses).Error
	if err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *PostgresRepository) CreateHouse(ctx context.Context, h *housedomain.House) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *PostgresRepository) UpdateHouse(ctx context.Context, houseID, name, currency string) error {
	return r.db.WithContext(ctx).Model(&housedomain.House{}).
		Where("id = ?", houseID).
		Updates(map[string]interface{}{"name": name, "currency": currency}).Error
}

func (r *PostgresRepository) DeleteHouse(ctx context.Context, houseID string) error {
	return r.db.WithContext(ctx).Delete(&housedomain.House{}, "id = ?", houseID).Error
}

func (r *PostgresRepository) GetMembership(ctx context.Context, houseID, userID string) (*housedomain.Membership, error) {
	var m housedomain.Membership
	if err := r.db.WithContext(ctx).Where("house_id = ? AND user_id = ?", houseID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housedomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) GetMembershipByID(ctx context.Context, houseID, membershipID string) (*housedomain.Membership, error) {
	var m housedomain.Membership
	if err := r.db.WithContext(ctx).Where("id = ? AND house_id = ?", membershipID, houseID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, housedomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, houseID string) ([]housedomain.Member, error) {
	var members []housedomain.Member
	err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.id as membership_id, memberships.user_id, memberships.role, memberships.created_at as joined_at, users.email, users.name").
		Joins("join users on users.id = memberships.user_id").
		Where("memberships.house_id = ?", houseID).
		Order("memberships.created_at asc").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) AddMembership(ctx context.Context, m *housedomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) UpdateMembershipRole(ctx context.Context, membershipID string, role housedomain.Role) error {
	return r.db.WithContext(ctx).Model(&housedomain.Membership{}).
		Where("id = ?", membershipID).
		Update("role", role).Error
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, membershipID string) error {
	return r.db.WithContext(ctx).Delete(&housedomain.Membership{}, "id = ?", membershipID).Error
}

func (r *PostgresRepository) DeleteMembershipsByHouse(ctx context.Context, houseID string) error {
	return r.db.WithContext(ctx).Where("house_id = ?", houseID).Delete(&housedomain.Membership{}).Error
}

func (r *PostgresRepository) DeleteProductsByHouse(ctx context.Context, houseID string) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM products WHERE house_id = ?", houseID).Error
}

func (r *PostgresRepository) DeleteCategoriesByHouse(ctx context.Context, houseID string) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM categories WHERE house_id = ?", houseID).Error
}

func (r *PostgresRepository) DeleteShoppingListByHouse(ctx context.Context, houseID string) error {
	err := r.db.WithContext(ctx).Exec(
		"DELETE FROM shopping_list_items WHERE list_id IN (SELECT id FROM shopping_lists WHERE house_id = ?)",
		houseID,
	).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM shopping_lists WHERE house_id = ?", houseID).Error
}
