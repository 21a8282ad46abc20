package handler

import (
	"net/http"

	"kiosk/internal/model"
	"kiosk/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu browsing requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// GetMenu handles GET /api/menu. It always answers with the current menu
// state; a failed refresh shows up in the state's error field.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.State(r.Context()))
}

// Refresh handles POST /api/menu/refresh.
func (h *MenuHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GetCategories handles GET /api/categories.
func (h *MenuHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories(r.Context())
	if categories == nil {
		categories = []model.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetProductsByCategory handles GET /api/categories/{id}/products.
func (h *MenuHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	products, err := h.service.ProductsByCategory(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *MenuHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.service.Product(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
