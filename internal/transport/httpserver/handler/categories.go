package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	categorydomain "home-inventory-go/internal/domain/category"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	categories, err := h.Categories.ListByHouse(r.Context(), houseID)
	if err != nil {
		h.log.InternalError("categories.list: list failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "categories", categories)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	var req categoryRequest
	if err := decodeValid(r, categorySchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.Categories.Create(r.Context(), houseID, req.Name)
	if err != nil {
		if errors.Is(err, categorydomain.ErrNameTaken) {
			writeError(w, http.StatusBadRequest, "Category name is already taken.")
			return
		}
		h.log.InternalError("categories.create: create failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusCreated, "categories", categories)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	categoryID := chi.URLParam(r, "id")

	var req categoryRequest
	if err := decodeValid(r, categorySchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.Categories.Update(r.Context(), houseID, categoryID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, categorydomain.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category was not found.")
		case errors.Is(err, categorydomain.ErrNameTaken):
			writeError(w, http.StatusBadRequest, "Category name is already taken.")
		default:
			h.log.InternalError("categories.update: update failed", err, "house_id", houseID, "category_id", categoryID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusOK, "categories", categories)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	categoryID := chi.URLParam(r, "id")

	categories, err := h.Categories.Delete(r.Context(), houseID, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, categorydomain.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category was not found.")
		case errors.Is(err, categorydomain.ErrCategoryInUse):
			writeError(w, http.StatusBadRequest, "Category still has products assigned to it.")
		default:
			h.log.InternalError("categories.delete: delete failed", err, "house_id", houseID, "category_id", categoryID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusOK, "categories", categories)
}
