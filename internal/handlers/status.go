package handlers

import (
	"errors"
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/remote"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

// StatusHandler reports connectivity and drives the manual sync.
type StatusHandler struct {
	Coord *appsync.Coordinator
}

func NewStatusHandler(c *appsync.Coordinator) *StatusHandler { return &StatusHandler{Coord: c} }

// Status: GET /status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"online":           h.Coord.Online(),
		"remoteConfigured": h.Coord.RemoteConfigured(),
		"setupRequired":    h.Coord.SchemaMissing(),
	})
}

// Sync: POST /sync – runs the same pass as boot.
func (h *StatusHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if err := h.Coord.Refresh(r.Context()); err != nil {
		if errors.Is(err, remote.ErrSchemaMissing) {
			httpx.JSONError(w, http.StatusConflict, "schema_missing", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "sync_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "synced"})
}
