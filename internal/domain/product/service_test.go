package product

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type fakeProductRepo struct {
	products   map[string]*Product
	categories map[string]*CategoryRef

	failCreateAfter int
	creates         int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:        map[string]*Product{},
		categories:      map[string]*CategoryRef{},
		failCreateAfter: -1,
	}
}

// Transaction snapshots state and restores it when fn fails, mimicking a
// rollback so the all-or-nothing import contract is testable.
func (r *fakeProductRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	productSnapshot := make(map[string]*Product, len(r.products))
	for id, p := range r.products {
		copied := *p
		copied.Prices = append([]float64(nil), p.Prices...)
		productSnapshot[id] = &copied
	}
	categorySnapshot := make(map[string]*CategoryRef, len(r.categories))
	for id, c := range r.categories {
		copied := *c
		categorySnapshot[id] = &copied
	}

	if err := fn(r); err != nil {
		r.products = productSnapshot
		r.categories = categorySnapshot
		return err
	}
	return nil
}

func (r *fakeProductRepo) ListByHouse(ctx context.Context, houseID string) ([]Product, error) {
	result := make([]Product, 0)
	for _, p := range r.products {
		if p.HouseID == houseID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, houseID, productID string) (*Product, error) {
	p, ok := r.products[productID]
	if !ok || p.HouseID != houseID {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByName(ctx context.Context, houseID, name string) (*Product, error) {
	for _, p := range r.products {
		if p.HouseID == houseID && p.Name == name {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *fakeProductRepo) Create(ctx context.Context, p *Product) error {
	r.creates++
	if r.failCreateAfter >= 0 && r.creates > r.failCreateAfter {
		return errors.New("store unavailable")
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, houseID, productID string) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) ListCategoryRefs(ctx context.Context, houseID string) ([]CategoryRef, error) {
	result := make([]CategoryRef, 0)
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeProductRepo) GetCategoryRefByName(ctx context.Context, houseID, name string) (*CategoryRef, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, ErrCategoryRefNotFound
}

func (r *fakeProductRepo) CreateCategoryRef(ctx context.Context, houseID string, ref *CategoryRef) error {
	r.categories[ref.ID] = ref
	return nil
}

func TestCreateTwiceMergesRestock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{HouseID: "h1", UserID: "u1", Name: "Milk", Price: 1.5, Quantity: 2}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	products, err := svc.Create(ctx, CreateInput{HouseID: "h1", UserID: "u1", Name: "Milk", Price: 2.0, Quantity: 3})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if len(products) != 1 {
		t.Fatalf("expected exactly one product row, got %d", len(products))
	}
	p := products[0]
	if p.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", p.Quantity)
	}
	if len(p.Prices) != 2 {
		t.Fatalf("prices history length = %d, want 2", len(p.Prices))
	}
	if p.Price != 2.0 {
		t.Fatalf("current price = %v, want 2.0", p.Price)
	}
}

func TestUpdateRejectsDuplicateName(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{HouseID: "h1", UserID: "u1", Name: "Milk", Price: 1, Quantity: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	bread, err := svc.Create(ctx, CreateInput{HouseID: "h1", UserID: "u1", Name: "Bread", Price: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var breadID string
	for _, p := range bread {
		if p.Name == "Bread" {
			breadID = p.ID
		}
	}

	if _, err := svc.Update(ctx, UpdateInput{ID: breadID, HouseID: "h1", Name: "Milk", Price: 1, Quantity: 1}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	if _, err := svc.Update(context.Background(), UpdateInput{ID: "nope", HouseID: "h1", Name: "X"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{HouseID: "h1", UserID: "u1", Name: "Milk", Price: 1, Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	remaining, err := svc.Delete(ctx, "h1", created[0].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty collection, got %d", len(remaining))
	}

	if _, err := svc.Delete(ctx, "h1", created[0].ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestImportAllOrNothing(t *testing.T) {
	repo := newFakeProductRepo()
	repo.failCreateAfter = 2
	svc := NewService(repo)
	ctx := context.Background()

	payload := ImportPayload{
		Products: []ImportProduct{
			{Name: "Milk", Price: 1, Quantity: 1},
			{Name: "Bread", Price: 2, Quantity: 1},
			{Name: "Eggs", Price: 3, Quantity: 12},
		},
	}

	if _, err := svc.Import(ctx, "h1", "u1", payload); err == nil {
		t.Fatal("expected import to fail")
	}

	products, _ := repo.ListByHouse(ctx, "h1")
	if len(products) != 0 {
		t.Fatalf("partial import: %d products committed", len(products))
	}
}

func TestImportResolvesCategoriesByName(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	dairy := "Dairy"
	payload := ImportPayload{
		Categories: []ImportCategory{{Name: "Dairy"}},
		Products: []ImportProduct{
			{Name: "Milk", Price: 1.5, Quantity: 2, Category: &dairy},
		},
	}

	products, err := svc.Import(ctx, "h1", "u1", payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].CategoryID == nil {
		t.Fatal("product should be linked to the imported category")
	}

	refs, _ := repo.ListCategoryRefs(ctx, "h1")
	if len(refs) != 1 || refs[0].Name != "dairy" {
		t.Fatalf("expected single lower-cased category, got %+v", refs)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	dairy := "dairy"
	seed := ImportPayload{
		Categories: []ImportCategory{{Name: "dairy"}, {Name: "bakery"}},
		Products: []ImportProduct{
			{Name: "Milk", Price: 1.5, Quantity: 2, Category: &dairy},
			{Name: "Bread", Price: 2.5, Quantity: 1},
		},
	}
	if _, err := svc.Import(ctx, "h1", "u1", seed); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	dump, err := svc.Export(ctx, "h1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Re-import into an empty house.
	repo2 := newFakeProductRepo()
	svc2 := NewService(repo2)
	if _, err := svc2.Import(ctx, "h2", "u1", *dump); err != nil {
		t.Fatalf("re-import: %v", err)
	}

	dump2, err := svc2.Export(ctx, "h2")
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}

	if len(dump2.Categories) != len(dump.Categories) {
		t.Fatalf("category sets differ: %d vs %d", len(dump2.Categories), len(dump.Categories))
	}
	if len(dump2.Products) != len(dump.Products) {
		t.Fatalf("product sets differ: %d vs %d", len(dump2.Products), len(dump.Products))
	}
	for i := range dump.Products {
		a, b := dump.Products[i], dump2.Products[i]
		if a.Name != b.Name || a.Quantity != b.Quantity || a.Price != b.Price {
			t.Fatalf("product %d differs after round trip: %+v vs %+v", i, a, b)
		}
		if (a.Category == nil) != (b.Category == nil) {
			t.Fatalf("product %d category presence differs", i)
		}
		if a.Category != nil && *a.Category != *b.Category {
			t.Fatalf("product %d category differs: %q vs %q", i, *a.Category, *b.Category)
		}
	}
}
