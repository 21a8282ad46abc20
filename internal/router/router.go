// Package router assembles the HTTP routes and middleware chain.
package router

import (
	"net/http"

	"kiosk/internal/handler"
	"kiosk/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", menuHandler.GetMenu)
		r.Post("/menu/refresh", menuHandler.Refresh)
		r.Get("/categories", menuHandler.GetCategories)
		r.Get("/categories/{id}/products", menuHandler.GetProductsByCategory)
		r.Get("/products/{id}", menuHandler.GetProduct)

		r.Post("/sessions", orderHandler.StartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", orderHandler.EndSession)
			r.Get("/cart", orderHandler.GetCart)

			r.Post("/items", orderHandler.AddItem)
			r.Patch("/items/{index}", orderHandler.UpdateItem)
			r.Delete("/items/{index}", orderHandler.RemoveItem)

			r.Post("/configuration", orderHandler.StartConfiguration)
			r.Get("/configuration", orderHandler.GetConfiguration)
			r.Delete("/configuration", orderHandler.DiscardConfiguration)
			r.Put("/configuration/selections", orderHandler.SelectComboItem)
			r.Post("/configuration/commit", orderHandler.CommitConfiguration)

			r.Post("/checkout", orderHandler.Checkout)
		})
	})

	return r
}
