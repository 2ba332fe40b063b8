package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	housedomain "home-inventory-go/internal/domain/house"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type inviteMemberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type updateMemberRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	members, err := h.Houses.ListMembers(r.Context(), houseID)
	if err != nil {
		h.log.InternalError("members.list: list failed", err, "house_id", houseID)
		internalError(w)
		return
	}

	writeData(w, http.StatusOK, "users", members)
}

// InviteMember adds a user to the house, creating the account first when the
// email is new. Invited accounts have no password until they set one.
func (h *Handlers) InviteMember(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}

	var req inviteMemberRequest
	if err := decodeValid(r, inviteMemberSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := h.Houses.InviteMember(r.Context(), houseID, req.Email, req.Name, housedomain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, housedomain.ErrOwnerNotAssignable):
			writeError(w, http.StatusBadRequest, "The owner role cannot be assigned.")
		case errors.Is(err, housedomain.ErrAlreadyMember):
			writeError(w, http.StatusBadRequest, "User is already a member of this house.")
		default:
			h.log.InternalError("members.invite: invite failed", err, "house_id", houseID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusCreated, "users", members)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	membershipID := chi.URLParam(r, "id")

	var req updateMemberRequest
	if err := decodeValid(r, updateMemberSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members, err := h.Houses.UpdateMember(r.Context(), houseID, membershipID, req.Name, housedomain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, housedomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "User was not found.")
		case errors.Is(err, housedomain.ErrOwnerImmutable):
			writeError(w, http.StatusBadRequest, "The owner membership cannot be changed.")
		case errors.Is(err, housedomain.ErrOwnerNotAssignable):
			writeError(w, http.StatusBadRequest, "The owner role cannot be assigned.")
		default:
			h.log.InternalError("members.update: update failed", err, "house_id", houseID, "membership_id", membershipID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusOK, "users", members)
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	houseID, ok := middleware.HouseIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "House was not found.")
		return
	}
	membershipID := chi.URLParam(r, "id")

	members, err := h.Houses.RemoveMember(r.Context(), houseID, membershipID)
	if err != nil {
		switch {
		case errors.Is(err, housedomain.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "User was not found.")
		case errors.Is(err, housedomain.ErrOwnerImmutable):
			writeError(w, http.StatusBadRequest, "The owner membership cannot be changed.")
		default:
			h.log.InternalError("members.remove: remove failed", err, "house_id", houseID, "membership_id", membershipID)
			internalError(w)
		}
		return
	}

	writeData(w, http.StatusOK, "users", members)
}
