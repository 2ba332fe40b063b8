package category

import (
	"context"
	"errors"

	"gorm.io/gorm"
	categorydomain "home-inventory-go/internal/domain/category"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(categorydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListByHouse(ctx context.Context, houseID string) ([]categorydomain.Category, error) {
	var categories []categorydomain.Category
	err := r.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("name asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, houseID, categoryID string) (*categorydomain.Category, error) {
	var c categorydomain.Category
	if err := r.db.WithContext(ctx).Where("id = ? AND house_id = ?", categoryID, houseID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categorydomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, houseID, name string) (*categorydomain.Category, error) {
	var c categorydomain.Category
	if err := r.db.WithContext(ctx).Where("house_id = ? AND name = ?", houseID, name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categorydomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *categorydomain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresRepository) UpdateName(ctx context.Context, categoryID, name string) error {
	return r.db.WithContext(ctx).Model(&categorydomain.Category{}).
		Where("id = ?", categoryID).
		Update("name", name).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, categoryID string) error {
	return r.db.WithContext(ctx).Delete(&categorydomain.Category{}, "id = ?", categoryID).Error
}

func (r *PostgresRepository) CountProducts(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("products").
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DetachProducts(ctx context.Context, categoryID string) error {
	return r.db.WithContext(ctx).
		Exec("UPDATE products SET category_id = NULL WHERE category_id = ?", categoryID).Error
}
