package handlers

import (
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

type ExpenseHandler struct {
	Coord *appsync.Coordinator
}

func NewExpenseHandler(c *appsync.Coordinator) *ExpenseHandler { return &ExpenseHandler{Coord: c} }

// List: GET /expenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Expenses)
}

// Save: POST /expenses
func (h *ExpenseHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.Expense
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("description", in.Description, v)
	validation.PositiveFloat("amount", in.Amount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Coord.SaveExpense(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Delete: POST /expenses/delete?id=...
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.DeleteExpense(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
