package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"home-inventory-go/internal/config"
	housedomain "home-inventory-go/internal/domain/house"
	"home-inventory-go/internal/transport/httpserver/handler"
	authmw "home-inventory-go/internal/transport/httpserver/middleware"
	"home-inventory-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, session *authmw.SessionAuth, guard *authmw.HouseGuard, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{cfg.CORSOrigin}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Window,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(handlers.RateLimited),
			))
			r.Post("/auth/authenticate", handlers.Authenticate)
		})

		r.Group(func(r chi.Router) {
			r.Use(session.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			r.Post("/auth/new-password", handlers.NewPassword)

			r.Get("/houses", handlers.ListHouses)
			r.Post("/houses", handlers.CreateHouse)
			r.Route("/houses/{houseID}", func(r chi.Router) {
				r.Use(guard.RequireMember)
				r.With(guard.RequireRole(housedomain.RoleAdmin)).Put("/", handlers.UpdateHouse)
				r.With(guard.RequireRole(housedomain.RoleOwner)).Delete("/", handlers.DeleteHouse)
			})

			r.Route("/products/{houseID}", func(r chi.Router) {
				r.Use(guard.RequireMember)
				r.Get("/", handlers.ListProducts)
				r.Post("/", handlers.CreateProduct)
				r.Put("/{id}", handlers.UpdateProduct)
				r.Delete("/{id}", handlers.DeleteProduct)
			})

			r.Route("/admin/categories/{houseID}", func(r chi.Router) {
				r.Use(guard.RequireMember)
				r.Use(guard.RequireRole(housedomain.RoleAdmin))
				r.Get("/", handlers.ListCategories)
				r.Post("/", handlers.CreateCategory)
				r.Put("/{id}", handlers.UpdateCategory)
				r.Delete("/{id}", handlers.DeleteCategory)
			})

			r.Route("/admin/users/{houseID}", func(r chi.Router) {
				r.Use(guard.RequireMember)
				r.Use(guard.RequireRole(housedomain.RoleAdmin))
				r.Get("/", handlers.ListMembers)
				r.Post("/", handlers.InviteMember)
				r.Put("/{id}", handlers.UpdateMember)
				r.Delete("/{id}", handlers.RemoveMember)
			})

			r.Route("/shopping-list/{houseID}", func(r chi.Router) {
				r.Use(guard.RequireMember)
				r.Get("/", handlers.GetShoppingList)
				r.Post("/", handlers.AddShoppingItem)
				r.Put("/{id}", handlers.UpdateShoppingItem)
				r.Delete("/{id}", handlers.RemoveShoppingItem)
			})

			r.With(guard.RequireMember).Post("/import/{houseID}", handlers.ImportInventory)
			r.With(guard.RequireMember).Get("/export/{houseID}", handlers.ExportInventory)
		})
	})

	return r
}
