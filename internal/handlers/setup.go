package handlers

import (
	"errors"
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/remote"
	"github.com/vsitelecom/fieldops/internal/store"
	"github.com/vsitelecom/fieldops/internal/validation"
)

// SetupHandler manages the remote backend credentials. Saved
// credentials are picked up at the next startup; the probe runs
// immediately so the user learns right away whether the backend is
// reachable and provisioned.
type SetupHandler struct {
	Store *store.Store
	// Open is swappable in tests.
	Open func(dsn string) (*remote.Adapter, error)
}

func NewSetupHandler(st *store.Store) *SetupHandler {
	return &SetupHandler{Store: st, Open: remote.Open}
}

// Save: POST /setup
func (h *SetupHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DSN string `json:"dsn"`
		Key string `json:"key"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("dsn", in.DSN, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Store.PutString(store.KeyRemoteDSN, in.DSN); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "persist_failed", nil)
		return
	}
	if in.Key != "" {
		if err := h.Store.PutString(store.KeyRemoteKey, in.Key); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "persist_failed", nil)
			return
		}
	}

	out := map[string]any{"status": "saved", "reachable": false, "setupRequired": false}
	adapter, err := h.Open(in.DSN)
	if err == nil {
		defer adapter.Close()
		switch probeErr := adapter.Probe(r.Context()); {
		case probeErr == nil:
			out["reachable"] = true
		case errors.Is(probeErr, remote.ErrSchemaMissing):
			out["reachable"] = true
			out["setupRequired"] = true
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Provision: POST /setup/provision – creates the mirror tables on the
// configured backend.
func (h *SetupHandler) Provision(w http.ResponseWriter, r *http.Request) {
	dsn, err := h.Store.GetString(store.KeyRemoteDSN)
	if err != nil || dsn == "" {
		httpx.JSONError(w, http.StatusBadRequest, "remote_not_configured", nil)
		return
	}
	adapter, err := h.Open(dsn)
	if err != nil {
		httpx.JSONError(w, http.StatusBadGateway, "remote_unreachable", nil)
		return
	}
	defer adapter.Close()
	if err := adapter.Provision(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "provision_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "provisioned"})
}
