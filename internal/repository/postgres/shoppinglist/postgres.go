package shoppinglist

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	listdomain "home-inventory-go/internal/domain/shoppinglist"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetListByHouse(ctx context.Context, houseID string) (*listdomain.ShoppingList, error) {
	var list listdomain.ShoppingList
	if err := r.db.WithContext(ctx).Where("house_id = ?", houseID).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listdomain.ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PostgresRepository) CreateList(ctx context.Context, list *listdomain.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

type itemRow struct {
	ID          string    `gorm:"column:id"`
	ListID      string    `gorm:"column:list_id"`
	ProductID   string    `gorm:"column:product_id"`
	Completed   bool      `gorm:"column:completed"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	ProductName string    `gorm:"column:product_name"`
}

func (r *PostgresRepository) ListItems(ctx context.Context, listID string) ([]listdomain.Item, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("shopping_list_items").
		Select("shopping_list_items.id, shopping_list_items.list_id, shopping_list_items.product_id, shopping_list_items.completed, shopping_list_items.created_at, products.name as product_name").
		Joins("left join products on products.id = shopping_list_items.product_id").
		Where("shopping_list_items.list_id = ?", listID).
		Order("shopping_list_items.created_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]listdomain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, listdomain.Item{
			ID:          row.ID,
			ListID:      row.ListID,
			ProductID:   row.ProductID,
			Completed:   row.Completed,
			CreatedAt:   row.CreatedAt,
			ProductName: row.ProductName,
		})
	}
	return items, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, listID, itemID string) (*listdomain.Item, error) {
	var item listdomain.Item
	if err := r.db.WithContext(ctx).Where("id = ? AND list_id = ?", itemID, listID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) GetItemByProduct(ctx context.Context, listID, productID string) (*listdomain.Item, error) {
	var item listdomain.Item
	if err := r.db.WithContext(ctx).Where("list_id = ? AND product_id = ?", listID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, item *listdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) SetItemCompleted(ctx context.Context, itemID string, completed bool) error {
	return r.db.WithContext(ctx).Model(&listdomain.Item{}).
		Where("id = ?", itemID).
		Update("completed", completed).Error
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Delete(&listdomain.Item{}, "id = ?", itemID).Error
}

func (r *PostgresRepository) ProductExists(ctx context.Context, houseID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("products").
		Where("id = ? AND house_id = ?", productID, houseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
