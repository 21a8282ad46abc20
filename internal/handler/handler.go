// Package handler exposes the menu and kiosk session services over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kiosk/internal/middleware"
	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// statusByCode maps domain error codes to HTTP status codes. Codes not listed
// are treated as internal errors.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:         http.StatusBadRequest,
	model.ErrCodeInvalidParameter:    http.StatusBadRequest,
	model.ErrCodeMissingField:        http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:     http.StatusBadRequest,
	model.ErrCodeInvalidCartItem:     http.StatusBadRequest,
	model.ErrCodeNotCombo:            http.StatusBadRequest,
	model.ErrCodeUnknownComboGroup:   http.StatusBadRequest,
	model.ErrCodeUnknownComboItem:    http.StatusBadRequest,
	model.ErrCodeProductNotFound:     http.StatusNotFound,
	model.ErrCodeCategoryNotFound:    http.StatusNotFound,
	model.ErrCodeSessionNotFound:     http.StatusNotFound,
	model.ErrCodeCartItemNotFound:    http.StatusNotFound,
	model.ErrCodeNoConfiguration:     http.StatusNotFound,
	model.ErrCodeComboConstraint:     http.StatusConflict,
	model.ErrCodeConfigurationClosed: http.StatusConflict,
	model.ErrCodeSessionCheckedOut:   http.StatusConflict,
	model.ErrCodeIncompleteCombo:     http.StatusUnprocessableEntity,
	model.ErrCodeEmptyCart:           http.StatusUnprocessableEntity,
	model.ErrCodeMenuFetch:           http.StatusServiceUnavailable,
	model.ErrCodeMalformedPayload:    http.StatusServiceUnavailable,
	model.ErrCodeEmptyDataset:        http.StatusServiceUnavailable,
	model.ErrCodePrinterUnavailable:  http.StatusServiceUnavailable,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already sent
		return
	}
}

// writeError writes an ErrorResponse carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	cid := middleware.GetCorrelationID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("correlation_id", cid).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: cid,
	})
}

// writeServiceError translates a service error into a response. Domain errors
// keep their code; anything else is reported as an internal error without
// leaking its text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected service error")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeJSON decodes the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}
