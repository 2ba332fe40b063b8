package shoppinglist

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the house's shopping list with its items, creating the list on
// first access.
func (s *Service) Get(ctx context.Context, houseID string) (*ListWithItems, error) {
	list, err := s.ensureList(ctx, houseID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, list)
}

// AddItem puts a product on the list. A product appears at most once.
func (s *Service) AddItem(ctx context.Context, houseID, productID string) (*ListWithItems, error) {
	exists, err := s.repo.ProductExists(ctx, houseID, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownProduct
	}

	list, err := s.ensureList(ctx, houseID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByProduct(ctx, list.ID, productID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrItemExists
	}

	item := Item{
		ID:        uuid.NewString(),
		ListID:    list.ID,
		ProductID: productID,
	}
	if err := s.repo.AddItem(ctx, &item); err != nil {
		return nil, err
	}

	return s.withItems(ctx, list)
}

func (s *Service) SetCompleted(ctx context.Context, houseID, itemID string, completed bool) (*ListWithItems, error) {
	list, err := s.ensureList(ctx, houseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetItem(ctx, list.ID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.SetItemCompleted(ctx, itemID, completed); err != nil {
		return nil, err
	}

	return s.withItems(ctx, list)
}

func (s *Service) RemoveItem(ctx context.Context, houseID, itemID string) (*ListWithItems, error) {
	list, err := s.ensureList(ctx, houseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetItem(ctx, list.ID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	return s.withItems(ctx, list)
}

func (s *Service) ensureList(ctx context.Context, houseID string) (*ShoppingList, error) {
	list, err := s.repo.GetListByHouse(ctx, houseID)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	created := ShoppingList{
		ID:      uuid.NewString(),
		HouseID: houseID,
	}
	if err := s.repo.CreateList(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) withItems(ctx context.Context, list *ShoppingList) (*ListWithItems, error) {
	items, err := s.repo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return &ListWithItems{ShoppingList: *list, Items: items}, nil
}
