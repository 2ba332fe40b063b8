package shoppinglist

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type fakeListRepo struct {
	lists    map[string]*ShoppingList
	items    map[string]*Item
	products map[string]bool
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{
		lists:    map[string]*ShoppingList{},
		items:    map[string]*Item{},
		products: map[string]bool{},
	}
}

func (r *fakeListRepo) GetListByHouse(ctx context.Context, houseID string) (*ShoppingList, error) {
	for _, list := range r.lists {
		if list.HouseID == houseID {
			return list, nil
		}
	}
	return nil, ErrListNotFound
}

func (r *fakeListRepo) CreateList(ctx context.Context, list *ShoppingList) error {
	r.lists[list.ID] = list
	return nil
}

func (r *fakeListRepo) ListItems(ctx context.Context, listID string) ([]Item, error) {
	result := make([]Item, 0)
	for _, item := range r.items {
		if item.ListID == listID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeListRepo) GetItem(ctx context.Context, listID, itemID string) (*Item, error) {
	item, ok := r.items[itemID]
	if !ok || item.ListID != listID {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (r *fakeListRepo) GetItemByProduct(ctx context.Context, listID, productID string) (*Item, error) {
	for _, item := range r.items {
		if item.ListID == listID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, ErrItemNotFound
}

func (r *fakeListRepo) AddItem(ctx context.Context, item *Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeListRepo) SetItemCompleted(ctx context.Context, itemID string, completed bool) error {
	item, ok := r.items[itemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Completed = completed
	return nil
}

func (r *fakeListRepo) DeleteItem(ctx context.Context, itemID string) error {
	delete(r.items, itemID)
	return nil
}

func (r *fakeListRepo) ProductExists(ctx context.Context, houseID, productID string) (bool, error) {
	return r.products[houseID+"/"+productID], nil
}

func TestGetCreatesListLazily(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo)
	ctx := context.Background()

	list, err := svc.Get(ctx, "h1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if list.HouseID != "h1" || len(list.Items) != 0 {
		t.Fatalf("unexpected list: %+v", list)
	}

	again, err := svc.Get(ctx, "h1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.ID != list.ID {
		t.Fatal("second get created a second list")
	}
	if len(repo.lists) != 1 {
		t.Fatalf("expected one list row, got %d", len(repo.lists))
	}
}

func TestAddItemChecksProductAndDuplicates(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "h1", "p1"); !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}

	repo.products["h1/p1"] = true
	list, err := svc.AddItem(ctx, "h1", "p1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected items: %+v", list.Items)
	}

	if _, err := svc.AddItem(ctx, "h1", "p1"); !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}
}

func TestSetCompletedAndRemove(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo)
	ctx := context.Background()

	repo.products["h1/p1"] = true
	list, err := svc.AddItem(ctx, "h1", "p1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := list.Items[0].ID

	updated, err := svc.SetCompleted(ctx, "h1", itemID, true)
	if err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if !updated.Items[0].Completed {
		t.Fatal("completed flag not set")
	}

	updated, err = svc.SetCompleted(ctx, "h1", itemID, false)
	if err != nil {
		t.Fatalf("unset completed: %v", err)
	}
	if updated.Items[0].Completed {
		t.Fatal("completed flag not cleared")
	}

	after, err := svc.RemoveItem(ctx, "h1", itemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("expected empty list, got %+v", after.Items)
	}

	if _, err := svc.RemoveItem(ctx, "h1", itemID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
