package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	shoppinglistdomain "home-inventory-go/internal/domain/shoppinglist"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type addShoppingItemRequest struct {
	ProductID string `json:"productId"`
}

type updateShoppingItemRequest struct {
	Completed bool `json:"completed"`
}

// GetShoppingList returns the house's single list, creating it lazily on
// first read.
func (h *Handlers) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	list, err := h.ShoppingList.Get(r.Context(), houseID)
	if err != nil {
		h.log.InternalError("shopping_list.get: get failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "shoppingList", list)
}

func (h *Handlers) AddShoppingItem(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	var req addShoppingItemRequest
	if err := decodeValid(r, shoppingItemSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.ShoppingList.AddItem(r.Context(), houseID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, shoppinglistdomain.ErrUnknownProduct):
			writeError(w, http.StatusBadRequest, "Product was not found.")
		case errors.Is(err, shoppinglistdomain.ErrItemExists):
			writeError(w, http.StatusBadRequest, "Product is already on the shopping list.")
		default:
			h.log.InternalError("shopping_list.add: add failed", err, "house_id", houseID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusCreated, "shoppingList", list)
}

func (h *Handlers) UpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	itemID := chi.URLParam(r, "id")

	var req updateShoppingItemRequest
	if err := decodeValid(r, shoppingItemUpdateSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.ShoppingList.SetCompleted(r.Context(), houseID, itemID, req.Completed)
	if err != nil {
		if errors.Is(err, shoppinglistdomain.ErrItemNotFound) || errors.Is(err, shoppinglistdomain.ErrListNotFound) {
			writeError(w, http.StatusNotFound, "Shopping list item was not found.")
			return
		}
		h.log.InternalError("shopping_list.update: update failed", err, "house_id", houseID, "item_id", itemID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "shoppingList", list)
}

func (h *Handlers) RemoveShoppingItem(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	itemID := chi.URLParam(r, "id")

	list, err := h.ShoppingList.RemoveItem(r.Context(), houseID, itemID)
	if err != nil {
		if errors.Is(err, shoppinglistdomain.ErrItemNotFound) || errors.Is(err, shoppinglistdomain.ErrListNotFound) {
			writeError(w, http.StatusNotFound, "Shopping list item was not found.")
			return
		}
		h.log.InternalError("shopping_list.remove: remove failed", err, "house_id", houseID, "item_id", itemID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "shoppingList", list)
}
