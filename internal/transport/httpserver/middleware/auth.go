package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"home-inventory-go/internal/auth"
	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/pkg/logger"
)

// UserResolver maps a verified token's user id to the full profile,
// typically through the read-through cache.
type UserResolver interface {
	Resolve(ctx context.Context, userID string) (*userdomain.User, error)
}

// SessionAuth is the session resolver: it accepts the signed token from the
// session cookie or an Authorization bearer header, interchangeably.
type SessionAuth struct {
	tokens     *auth.TokenService
	users      UserResolver
	cookieName string
	log        logger.Logger
}

func NewSessionAuth(tokens *auth.TokenService, users UserResolver, cookieName string, log logger.Logger) *SessionAuth {
	return &SessionAuth{
		tokens:     tokens,
		users:      users,
		cookieName: cookieName,
		log:        log,
	}
}

type contextKey int

const (
	userKey contextKey = iota
	houseIDKey
	roleKey
)

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := a.extractToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			unauthorized(w)
			return
		}

		resolved, err := a.users.Resolve(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "User was not found")
				return
			}
			a.log.InternalError("auth: resolve user failed", err, "user_id", claims.UserID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), resolved)))
	})
}

func (a *SessionAuth) extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid token")
}

func WithUser(ctx context.Context, u *userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	u, ok := ctx.Value(userKey).(*userdomain.User)
	if !ok || u == nil || u.ID == "" {
		return nil, false
	}
	return u, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  message,
		"status": "error",
	})
}
