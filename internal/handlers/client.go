package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

type ClientHandler struct {
	Coord *appsync.Coordinator
}

func NewClientHandler(c *appsync.Coordinator) *ClientHandler { return &ClientHandler{Coord: c} }

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Clients)
}

// Save: POST /clients – creates when id is empty, updates otherwise.
func (h *ClientHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.Client
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Coord.SaveClient(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: POST /clients/delete?id=...
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.DeleteClient(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
