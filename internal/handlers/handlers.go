// Package handlers exposes the application over a JSON HTTP API. Each
// entity gets a small handler struct wired by the server router.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/scheduling"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

// decodeJSON reads a request body into dst, rejecting trailing garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// writeDomainError maps coordinator errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appsync.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, models.ErrBadTransition):
		httpx.JSONError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, scheduling.ErrConflict):
		httpx.JSONError(w, http.StatusConflict, "slot_conflict", nil)
	case errors.Is(err, scheduling.ErrAlreadyScheduled):
		httpx.JSONError(w, http.StatusConflict, "quote_already_scheduled", nil)
	case errors.Is(err, scheduling.ErrQuoteNotApproved):
		httpx.JSONError(w, http.StatusConflict, "quote_not_approved", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return "", false
	}
	return id, true
}
