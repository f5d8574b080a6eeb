package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

type CompanyHandler struct {
	Coord *appsync.Coordinator
}

func NewCompanyHandler(c *appsync.Coordinator) *CompanyHandler { return &CompanyHandler{Coord: c} }

// Get: GET /company
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Company)
}

// Save: POST /company – replaces the singleton profile.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.CompanyProfile
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if in.TravelRatePerKm < 0 {
		v["travelRatePerKm"] = "must_be_positive"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Coord.SaveCompany(in); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}
