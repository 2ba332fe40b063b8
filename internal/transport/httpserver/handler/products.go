package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	productdomain "home-inventory-go/internal/domain/product"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type productRequest struct {
	Name                  string     `json:"name"`
	Price                 float64    `json:"price"`
	Quantity              int        `json:"quantity"`
	WarnOnQuantity        *int       `json:"warnOnQuantity"`
	IgnoreQuantityWarning bool       `json:"ignoreQuantityWarning"`
	ExpirationDate        *time.Time `json:"expirationDate"`
	CategoryID            *string    `json:"categoryId"`
	CreatedAt             *time.Time `json:"createdAt"`
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	products, err := h.Products.ListByHouse(r.Context(), houseID)
	if err != nil {
		h.log.InternalError("products.list: list failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "products", products)
}

// CreateProduct adds stock. A name collision within the house is a restock,
// not a conflict: quantities merge and the price history grows.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	var req productRequest
	if err := decodeValid(r, productSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.Products.Create(r.Context(), productdomain.CreateInput{
		HouseID:               houseID,
		UserID:                u.ID,
		Name:                  req.Name,
		Price:                 req.Price,
		Quantity:              req.Quantity,
		WarnOnQuantity:        req.WarnOnQuantity,
		IgnoreQuantityWarning: req.IgnoreQuantityWarning,
		ExpirationDate:        req.ExpirationDate,
		CategoryID:            req.CategoryID,
		CreatedAt:             req.CreatedAt,
	})
	if err != nil {
		h.log.InternalError("products.create: create failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusCreated, "products", products)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	productID := chi.URLParam(r, "id")

	var req productRequest
	if err := decodeValid(r, productSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.Products.Update(r.Context(), productdomain.UpdateInput{
		ID:                    productID,
		HouseID:               houseID,
		Name:                  req.Name,
		Price:                 req.Price,
		Quantity:              req.Quantity,
		WarnOnQuantity:        req.WarnOnQuantity,
		IgnoreQuantityWarning: req.IgnoreQuantityWarning,
		ExpirationDate:        req.ExpirationDate,
		CategoryID:            req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, productdomain.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product was not found.")
		case errors.Is(err, productdomain.ErrNameTaken):
			writeError(w, http.StatusBadRequest, "Product name is already taken.")
		default:
			h.log.InternalError("products.update: update failed", err, "house_id", houseID, "product_id", productID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusOK, "products", products)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	productID := chi.URLParam(r, "id")

	products, err := h.Products.Delete(r.Context(), houseID, productID)
	if err != nil {
		if errors.Is(err, productdomain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product was not found.")
			return
		}
		h.log.InternalError("products.delete: delete failed", err, "house_id", houseID, "product_id", productID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "products", products)
}
