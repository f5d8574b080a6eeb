package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/services"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

type FinanceHandler struct {
	Coord *appsync.Coordinator
	Svc   *services.FinanceService
}

func NewFinanceHandler(c *appsync.Coordinator, svc *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{Coord: c, Svc: svc}
}

// Summary: GET /finance/summary
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap := h.Coord.Snapshot()
	httpx.JSON(w, http.StatusOK, h.Svc.Summarize(snap.Quotes, snap.Expenses))
}
