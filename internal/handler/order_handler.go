package handler

import (
	"net/http"
	"strconv"

	"kiosk/internal/model"
	"kiosk/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles kiosk session, cart, combo configuration and checkout
// requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// StartSession handles POST /api/sessions.
func (h *OrderHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// EndSession handles DELETE /api/sessions/{id}.
func (h *OrderHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.EndSession(r.Context(), sessionID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCart handles GET /api/sessions/{id}/cart.
func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/sessions/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.AddItem(r.Context(), sessionID, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// UpdateItem handles PATCH /api/sessions/{id}/items/{index}.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	var req model.UpdateQuantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), sessionID, index, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/sessions/{id}/items/{index}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	index, ok := h.lineIndex(w, r)
	if !ok {
		return
	}

	view, err := h.service.RemoveItem(r.Context(), sessionID, index)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// StartConfiguration handles POST /api/sessions/{id}/configuration.
func (h *OrderHandler) StartConfiguration(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.StartConfigurationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.StartConfiguration(r.Context(), sessionID, req.ProductID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// GetConfiguration handles GET /api/sessions/{id}/configuration.
func (h *OrderHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetConfiguration(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SelectComboItem handles PUT /api/sessions/{id}/configuration/selections.
func (h *OrderHandler) SelectComboItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var choice model.ComboChoice
	if !decodeJSON(w, r, &choice, h.logger) {
		return
	}

	view, err := h.service.SelectComboItem(r.Context(), sessionID, choice)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CommitConfiguration handles POST /api/sessions/{id}/configuration/commit.
func (h *OrderHandler) CommitConfiguration(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.CommitConfiguration(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// DiscardConfiguration handles DELETE /api/sessions/{id}/configuration.
func (h *OrderHandler) DiscardConfiguration(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DiscardConfiguration(r.Context(), sessionID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/sessions/{id}/checkout. A receipt that could not
// be printed does not fail the request; the response reports it instead.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Checkout(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid session ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrderHandler) lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid cart line index", h.logger)
		return 0, false
	}
	return index, true
}
