package handler

import (
	"net/http"

	"home-inventory-go/internal/auth"
	"home-inventory-go/internal/config"
	categorydomain "home-inventory-go/internal/domain/category"
	housedomain "home-inventory-go/internal/domain/house"
	productdomain "home-inventory-go/internal/domain/product"
	shoppinglistdomain "home-inventory-go/internal/domain/shoppinglist"
	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/pkg/logger"
)

type Handlers struct {
	Users        *userdomain.Service
	Houses       *housedomain.Service
	Products     *productdomain.Service
	Categories   *categorydomain.Service
	ShoppingList *shoppinglistdomain.Service

	Tokens  *auth.TokenService
	Session config.SessionConfig

	log logger.Logger
}

func New(users *userdomain.Service, houses *housedomain.Service, products *productdomain.Service, categories *categorydomain.Service, shoppingList *shoppinglistdomain.Service, tokens *auth.TokenService, session config.SessionConfig, log logger.Logger) *Handlers {
	return &Handlers{
		Users:        users,
		Houses:       houses,
		Products:     products,
		Categories:   categories,
		ShoppingList: shoppingList,
		Tokens:       tokens,
		Session:      session,
		log:          log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RateLimited answers requests rejected by the auth rate limiter.
func (h *Handlers) RateLimited(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusTooManyRequests, "Too many requests.")
}
