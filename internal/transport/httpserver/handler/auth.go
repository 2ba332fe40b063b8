package handler

import (
	"errors"
	"net/http"
	"time"

	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/internal/transport/httpserver/middleware"
)

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type newPasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Authenticate verifies credentials and issues the session token, both as an
// httpOnly cookie and in the body for header transport. The very first call
// against an empty store bootstraps the seed user together with their house.
func (h *Handlers) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := decodeValid(r, authenticateSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, bootstrapped, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.authenticate: invalid credentials", err)
			writeError(w, http.StatusBadRequest, "Invalid email or password.")
			return
		}
		h.log.InternalError("auth.authenticate: authenticate failed", err)
		internalError(w)
		return
	}

	// Bootstrap is idempotent; running it on every login retries a house
	// provisioning that failed after the seed user row was committed.
	if err := h.Houses.Bootstrap(r.Context(), u.ID); err != nil {
		h.log.InternalError("auth.authenticate: bootstrap house failed", err, "user_id", u.ID)
		internalError(w)
		return
	}
	if bootstrapped {
		h.log.Info("auth.authenticate: bootstrapped seed user", "user_id", u.ID)
	}

	token, err := h.Tokens.Generate(u.ID)
	if err != nil {
		h.log.InternalError("auth.authenticate: sign token failed", err, "user_id", u.ID)
		internalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Session.TTL),
		HttpOnly: true,
		Secure:   h.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"userId": u.ID,
		"token":  token,
	})
}

// NewPassword rotates the session user's password. The confirmation match is
// a bespoke cross-field check the schema validator does not cover.
func (h *Handlers) NewPassword(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req newPasswordRequest
	if err := decodeValid(r, newPasswordSchema, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.Users.ChangePassword(r.Context(), u.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "Passwords do not match.")
		case errors.Is(err, userdomain.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Old password is not correct.")
		default:
			h.log.InternalError("auth.new_password: change password failed", err, "user_id", u.ID)
			internalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	writeData(w, http.StatusOK, "user", u)
}
