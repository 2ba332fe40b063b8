package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByHouse(ctx context.Context, houseID string) ([]Product, error) {
	return s.repo.ListByHouse(ctx, houseID)
}

// Create adds a product, or restocks an existing one: a second create with a
// name already present in the house merges the quantity into the existing row
// and appends the added total to the price history instead of inserting a
// duplicate.
//
// The read-merge-write is not version-guarded; two near-simultaneous restocks
// of the same product can race. The transaction narrows the window but a
// compare-and-swap on a version column would be needed to close it.
func (s *Service) Create(ctx context.Context, input CreateInput) ([]Product, error) {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		_, err := createInTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, input.HouseID)
}

func createInTx(ctx context.Context, tx Repository, input CreateInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)

	existing, err := tx.GetByName(ctx, input.HouseID, name)
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += input.Quantity
		existing.Price = input.Price
		existing.Prices = append(existing.Prices, stockTotal(input.Price, input.Quantity))
		if err := tx.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	prices := input.Prices
	if len(prices) == 0 {
		prices = []float64{stockTotal(input.Price, input.Quantity)}
	}

	p := Product{
		ID:                    uuid.NewString(),
		Name:                  name,
		Price:                 input.Price,
		Prices:                prices,
		Quantity:              input.Quantity,
		WarnOnQuantity:        input.WarnOnQuantity,
		IgnoreQuantityWarning: input.IgnoreQuantityWarning,
		ExpirationDate:        input.ExpirationDate,
		CategoryID:            input.CategoryID,
		HouseID:               input.HouseID,
		UserID:                input.UserID,
	}
	if input.CreatedAt != nil {
		p.CreatedAt = *input.CreatedAt
	}
	if err := tx.Create(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) ([]Product, error) {
	name := strings.TrimSpace(input.Name)

	p, err := s.repo.GetByID(ctx, input.HouseID, input.ID)
	if err != nil {
		return nil, err
	}

	if name != p.Name {
		existing, err := s.repo.GetByName(ctx, input.HouseID, name)
		if err != nil && !errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != p.ID {
			return nil, ErrNameTaken
		}
	}

	p.Name = name
	p.Price = input.Price
	p.Quantity = input.Quantity
	p.WarnOnQuantity = input.WarnOnQuantity
	p.IgnoreQuantityWarning = input.IgnoreQuantityWarning
	p.ExpirationDate = input.ExpirationDate
	p.CategoryID = input.CategoryID

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, input.HouseID)
}

func (s *Service) Delete(ctx context.Context, houseID, productID string) ([]Product, error) {
	if _, err := s.repo.GetByID(ctx, houseID, productID); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, houseID, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByHouse(ctx, houseID)
}

// Import writes a validated batch in a single transaction; a failure on any
// element rolls the whole batch back. Elements merge-restock on name
// collision just like single creates.
func (s *Service) Import(ctx context.Context, houseID, userID string, payload ImportPayload) ([]Product, error) {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		categoryIDs := make(map[string]string)

		for _, c := range payload.Categories {
			ref, err := ensureCategoryRef(ctx, tx, houseID, c.Name)
			if err != nil {
				return err
			}
			categoryIDs[ref.Name] = ref.ID
		}

		for _, item := range payload.Products {
			input := CreateInput{
				HouseID:               houseID,
				UserID:                userID,
				Name:                  item.Name,
				Price:                 item.Price,
				Prices:                item.Prices,
				Quantity:              item.Quantity,
				WarnOnQuantity:        item.WarnOnQuantity,
				IgnoreQuantityWarning: item.IgnoreQuantityWarning,
				ExpirationDate:        item.ExpirationDate,
			}

			if item.Category != nil {
				name := normalizeCategoryName(*item.Category)
				id, ok := categoryIDs[name]
				if !ok {
					ref, err := ensureCategoryRef(ctx, tx, houseID, name)
					if err != nil {
						return err
					}
					id = ref.ID
					categoryIDs[name] = id
				}
				input.CategoryID = &id
			}

			if _, err := createInTx(ctx, tx, input); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByHouse(ctx, houseID)
}

// Export emits the import file format for a house. Products carry category
// names, not ids, so the dump survives id reassignment on re-import.
func (s *Service) Export(ctx context.Context, houseID string) (*ImportPayload, error) {
	refs, err := s.repo.ListCategoryRefs(ctx, houseID)
	if err != nil {
		return nil, err
	}

	namesByID := make(map[string]string, len(refs))
	payload := ImportPayload{
		Products:   []ImportProduct{},
		Categories: make([]ImportCategory, 0, len(refs)),
	}
	for _, ref := range refs {
		namesByID[ref.ID] = ref.Name
		payload.Categories = append(payload.Categories, ImportCategory{Name: ref.Name})
	}

	products, err := s.repo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		item := ImportProduct{
			Name:                  p.Name,
			Price:                 p.Price,
			Prices:                p.Prices,
			Quantity:              p.Quantity,
			WarnOnQuantity:        p.WarnOnQuantity,
			IgnoreQuantityWarning: p.IgnoreQuantityWarning,
			ExpirationDate:        p.ExpirationDate,
		}
		if p.CategoryID != nil {
			if name, ok := namesByID[*p.CategoryID]; ok {
				item.Category = &name
			}
		}
		payload.Products = append(payload.Products, item)
	}

	return &payload, nil
}

func ensureCategoryRef(ctx context.Context, tx Repository, houseID, name string) (*CategoryRef, error) {
	name = normalizeCategoryName(name)

	existing, err := tx.GetCategoryRefByName(ctx, houseID, name)
	if err != nil && !errors.Is(err, ErrCategoryRefNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ref := CategoryRef{ID: uuid.NewString(), Name: name}
	if err := tx.CreateCategoryRef(ctx, houseID, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func stockTotal(price float64, quantity int) float64 {
	return price * float64(quantity)
}
