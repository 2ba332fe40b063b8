package shoppinglist

import "context"

type Repository interface {
	GetListByHouse(ctx context.Context, houseID string) (*ShoppingList, error)
	CreateList(ctx context.Context, list *ShoppingList) error
	ListItems(ctx context.Context, listID string) ([]Item, error)
	GetItem(ctx context.Context, listID, itemID string) (*Item, error)
	GetItemByProduct(ctx context.Context, listID, productID string) (*Item, error)
	AddItem(ctx context.Context, item *Item) error
	SetItemCompleted(ctx context.Context, itemID string, completed bool) error
	DeleteItem(ctx context.Context, itemID string) error
	ProductExists(ctx context.Context, houseID, productID string) (bool, error)
}
