package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

// CatalogHandler serves both catalog entities; they share the same
// CRUD shape.
type CatalogHandler struct {
	Coord *appsync.Coordinator
}

func NewCatalogHandler(c *appsync.Coordinator) *CatalogHandler { return &CatalogHandler{Coord: c} }

// ListProducts: GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Products)
}

// SaveProduct: POST /products
func (h *CatalogHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var in models.Product
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.PositiveFloat("price", in.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Coord.SaveProduct(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// DeleteProduct: POST /products/delete?id=...
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.DeleteProduct(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListServices: GET /services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Services)
}

// SaveService: POST /services
func (h *CatalogHandler) SaveService(w http.ResponseWriter, r *http.Request) {
	var in models.Service
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.PositiveFloat("hourlyRate", in.HourlyRate, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Coord.SaveService(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// DeleteService: POST /services/delete?id=...
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.DeleteService(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
