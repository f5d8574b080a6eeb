package handlers

import (
	"errors"
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/lookup"
)

type LookupHandler struct {
	Lookup *lookup.Client
}

func NewLookupHandler(l *lookup.Client) *LookupHandler { return &LookupHandler{Lookup: l} }

// CEP: GET /lookup/cep?cep=...
func (h *LookupHandler) CEP(w http.ResponseWriter, r *http.Request) {
	cep := r.URL.Query().Get("cep")
	addr, err := h.Lookup.CEP(r.Context(), cep)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, addr)
}

// CNPJ: GET /lookup/cnpj?cnpj=...
func (h *LookupHandler) CNPJ(w http.ResponseWriter, r *http.Request) {
	cnpj := r.URL.Query().Get("cnpj")
	co, err := h.Lookup.CNPJ(r.Context(), cnpj)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, co)
}

func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lookup.ErrBadRequest):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_code", nil)
	case errors.Is(err, lookup.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusBadGateway, "lookup_failed", nil)
	}
}
