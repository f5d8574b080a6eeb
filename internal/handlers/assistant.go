package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vsitelecom/fieldops/internal/assistant"
	"github.com/vsitelecom/fieldops/internal/httpx"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

// AssistantHandler fronts the model API. Every endpoint has a non-AI
// fallback so the app keeps working offline or without a key.
type AssistantHandler struct {
	AI    *assistant.Client
	Coord *appsync.Coordinator
}

func NewAssistantHandler(ai *assistant.Client, c *appsync.Coordinator) *AssistantHandler {
	return &AssistantHandler{AI: ai, Coord: c}
}

const askFallback = "O assistente nao esta disponivel no momento. Verifique a conexao e a chave de API."

// Ask: POST /assistant/ask
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Question string `json:"question"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Question) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"question": "required"})
		return
	}
	answer, err := h.AI.Ask(r.Context(), in.Question, h.dataSummary())
	if err != nil {
		answer = askFallback
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// Distance: POST /assistant/distance – estimation failure degrades to
// zero so the quote form stays usable.
func (h *AssistantHandler) Distance(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	km, err := h.AI.EstimateDistanceKm(r.Context(), in.Origin, in.Destination)
	if err != nil {
		km = 0
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{"distanceKm": km})
}

// Notes: POST /assistant/notes – on failure the raw notes come back
// unchanged.
func (h *AssistantHandler) Notes(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Notes string `json:"notes"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.AI.ProfessionalizeNotes(r.Context(), in.Notes)
	if err != nil {
		out = in.Notes
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"notes": out})
}

// dataSummary condenses the working set into a prompt-sized overview.
func (h *AssistantHandler) dataSummary() string {
	snap := h.Coord.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Clientes: %d\n", len(snap.Clients))
	fmt.Fprintf(&b, "Orcamentos: %d\n", len(snap.Quotes))
	byStatus := map[string]int{}
	var pipeline float64
	for _, q := range snap.Quotes {
		byStatus[q.Status]++
		pipeline += q.Total
	}
	for status, n := range byStatus {
		fmt.Fprintf(&b, "  %s: %d\n", status, n)
	}
	fmt.Fprintf(&b, "Valor total em orcamentos: R$ %.2f\n", pipeline)
	fmt.Fprintf(&b, "Agendamentos: %d\n", len(snap.Appointments))
	var expenses float64
	for _, e := range snap.Expenses {
		expenses += e.Amount
	}
	fmt.Fprintf(&b, "Despesas fixas: R$ %.2f\n", expenses)
	return b.String()
}
