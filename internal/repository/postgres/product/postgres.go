package product

import (
	"context"
	"errors"

	"gorm.io/gorm"
	productdomain "home-inventory-go/internal/domain/product"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(productdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListByHouse(ctx context.Context, houseID string) ([]productdomain.Product, error) {
	var products []productdomain.Product
	err := r.db.WithContext(ctx).
		Where("house_id = ?", houseID).
		Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, houseID, productID string) (*productdomain.Product, error) {
	var p productdomain.Product
	if err := r.db.WithContext(ctx).Where("id = ? AND house_id = ?", productID, houseID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, productdomain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, houseID, name string) (*productdomain.Product, error) {
	var p productdomain.Product
	if err := r.db.WithContext(ctx).Where("house_id = ? AND name = ?", houseID, name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, productdomain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *productdomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresRepository) Update(ctx context.Context, p *productdomain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, houseID, productID string) error {
	return r.db.WithContext(ctx).
		Delete(&productdomain.Product{}, "id = ? AND house_id = ?", productID, houseID).Error
}

type categoryRow struct {
	ID   string `gorm:"column:id"`
	Name string `gorm:"column:name"`
}

func (r *PostgresRepository) ListCategoryRefs(ctx context.Context, houseID string) ([]productdomain.CategoryRef, error) {
	var rows []categoryRow
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("id, name").
		Where("house_id = ?", houseID).
		Order("name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	refs := make([]productdomain.CategoryRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, productdomain.CategoryRef{ID: row.ID, Name: row.Name})
	}
	return refs, nil
}

func (r *PostgresRepository) GetCategoryRefByName(ctx context.Context, houseID, name string) (*productdomain.CategoryRef, error) {
	var row categoryRow
	err := r.db.WithContext(ctx).
		Table("categories").
		Select("id, name").
		Where("house_id = ? AND name = ?", houseID, name).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, productdomain.ErrCategoryRefNotFound
		}
		return nil, err
	}
	return &productdomain.CategoryRef{ID: row.ID, Name: row.Name}, nil
}

func (r *PostgresRepository) CreateCategoryRef(ctx context.Context, houseID string, ref *productdomain.CategoryRef) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO categories (id, name, house_id, created_at) VALUES (?, ?, ?, NOW())",
		ref.ID, ref.Name, houseID,
	).Error
}
