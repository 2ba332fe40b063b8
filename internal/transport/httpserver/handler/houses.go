package handler

import (
	"errors"
	"net/http"

	housedomain "home-inventory-go/internal/domain/house"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type houseRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (h *Handlers) ListHouses(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	houses, err := h.Houses.ListByUser(r.Context(), u.ID)
	if err != nil {
		h.log.InternalError("houses.list: list failed", err, "user_id", u.ID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "houses", houses)
}

func (h *Handlers) CreateHouse(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req houseRequest
	if err := decodeValid(r, houseSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Houses.Create(r.Context(), u.ID, req.Name, req.Currency); err != nil {
		if errors.Is(err, housedomain.ErrNameTaken) {
			writeError(w, http.StatusBadRequest, "House name is already taken.")
			return
		}
		h.log.InternalError("houses.create: create failed", err, "user_id", u.ID)
		internalError(w)
		return
	}

	h.respondHouses(w, r, http.StatusCreated, u.ID)
}

func (h *Handlers) UpdateHouse(w http.ResponseWriter, r *http.Request) {
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

	var req houseRequest
	if err := decodeValid(r, houseSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Houses.Update(r.Context(), houseID, req.Name, req.Currency); err != nil {
		switch {
		case errors.Is(err, housedomain.ErrHouseNotFound):
			writeError(w, http.StatusNotFound, "House was not found.")
		case errors.Is(err, housedomain.ErrNameTaken):
			writeError(w, http.StatusBadRequest, "House name is already taken.")
		default:
			h.log.InternalError("houses.update: update failed", err, "house_id", houseID)
			internalError(w)
		}
		return
	}

	h.respondHouses(w, r, http.StatusOK, u.ID)
}

func (h *Handlers) DeleteHouse(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Houses.Delete(r.Context(), houseID); err != nil {
		if errors.Is(err, housedomain.ErrHouseNotFound) {
			writeError(w, http.StatusNotFound, "House was not found.")
			return
		}
		h.log.InternalError("houses.delete: delete failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	h.respondHouses(w, r, http.StatusOK, u.ID)
}

// respondHouses re-queries the caller's full house collection, the contract
// every house mutation answers with.
func (h *Handlers) respondHouses(w http.ResponseWriter, r *http.Request, status int, userID string) {
	houses, err := h.Houses.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.InternalError("houses: refresh collection failed", err, "user_id", userID)
		internalError(w)
		return
	}
	writeData(w, status, "houses", houses)
}
