package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vsitelecom/fieldops/internal/assistant"
	"github.com/vsitelecom/fieldops/internal/connectivity"
	"github.com/vsitelecom/fieldops/internal/lookup"
	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/store"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	coord, err := appsync.New(st, nil, connectivity.New(false), zerolog.Nop())
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return New(Deps{
		Coord:  coord,
		Store:  st,
		AI:     assistant.New(""),
		Lookup: lookup.New(),
		Log:    zerolog.Nop(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStatusLocalOnly(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/status", nil)
	out := decode[map[string]any](t, rec)
	if out["remoteConfigured"] != false || out["online"] != false {
		t.Fatalf("unexpected status %v", out)
	}
}

func TestClientCRUD(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/clients", models.Client{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("nameless client: expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/clients", models.Client{Name: "Condominio Aurora"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decode[models.Client](t, rec)
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	rec = doJSON(t, h, http.MethodGet, "/clients", nil)
	list := decode[[]models.Client](t, rec)
	if len(list) != 1 || list[0].Name != "Condominio Aurora" {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = doJSON(t, h, http.MethodPost, "/clients/delete?id="+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/clients/delete?id="+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPut, "/clients", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/sync", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET /sync, got %d", rec.Code)
	}
}

func TestQuoteLifecycleOverHTTP(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/quotes", models.Quote{
		ClientID: "c1",
		Items: []models.QuoteItem{
			{Type: models.ItemService, Description: "Instalacao CFTV", Quantity: 1, UnitPrice: 800, DurationMinutes: 120},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create quote: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	q := decode[models.Quote](t, rec)
	if q.Status != models.QuoteDraft || q.Total != 800 {
		t.Fatalf("unexpected quote %+v", q)
	}

	// Scheduling a draft quote is rejected.
	rec = doJSON(t, h, http.MethodPost, "/appointments", map[string]any{
		"quoteId": q.ID, "date": "2026-09-10", "startTime": "09:00",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("draft schedule: expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/quotes/status", map[string]string{"id": q.ID, "status": models.QuoteApproved})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/appointments", map[string]any{
		"quoteId": q.ID, "date": "2026-09-10", "startTime": "09:00",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	a := decode[models.Appointment](t, rec)
	if a.EndTime != "11:00" {
		t.Fatalf("duration should default to the quote estimate, got %+v", a)
	}

	rec = doJSON(t, h, http.MethodPost, "/appointments/complete?id="+a.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/quotes", nil)
	quotes := decode[[]models.Quote](t, rec)
	if len(quotes) != 1 || quotes[0].Status != models.QuoteCompleted {
		t.Fatalf("quote should be completed, got %+v", quotes)
	}

	rec = doJSON(t, h, http.MethodPost, "/quotes/invoice", map[string]string{"id": q.ID, "nfseNumber": "NFS-001"})
	if rec.Code != http.StatusOK {
		t.Fatalf("invoice: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	inv := decode[models.Quote](t, rec)
	if inv.Status != models.QuoteInvoiced || inv.NFSeNumber != "NFS-001" {
		t.Fatalf("unexpected invoiced quote %+v", inv)
	}

	// Invoiced is terminal.
	rec = doJSON(t, h, http.MethodPost, "/quotes/status", map[string]string{"id": q.ID, "status": models.QuoteDraft})
	if rec.Code != http.StatusConflict {
		t.Fatalf("terminal transition: expected 409, got %d", rec.Code)
	}
}

func TestAppointmentValidation(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/appointments", map[string]any{
		"quoteId": "q1", "date": "10/09/2026", "startTime": "9h",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	out := decode[map[string]any](t, rec)
	if out["error"] != "validation_failed" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestAssistantFallbacks(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/assistant/distance", map[string]string{"origin": "a", "destination": "b"})
	if rec.Code != http.StatusOK {
		t.Fatalf("distance: expected 200, got %d", rec.Code)
	}
	dist := decode[map[string]float64](t, rec)
	if dist["distanceKm"] != 0 {
		t.Fatalf("unconfigured assistant should fall back to 0, got %v", dist)
	}

	rec = doJSON(t, h, http.MethodPost, "/assistant/notes", map[string]string{"notes": "troquei o roteador"})
	notes := decode[map[string]string](t, rec)
	if notes["notes"] != "troquei o roteador" {
		t.Fatalf("unconfigured assistant should echo notes, got %v", notes)
	}
}

func TestFinanceSummaryEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/quotes", models.Quote{
		ClientID: "c1",
		Items:    []models.QuoteItem{{Type: models.ItemProduct, Quantity: 2, UnitPrice: 100, CostPrice: 40}},
	})
	q := decode[models.Quote](t, rec)
	doJSON(t, h, http.MethodPost, "/quotes/status", map[string]string{"id": q.ID, "status": models.QuoteApproved})
	doJSON(t, h, http.MethodPost, "/expenses", models.Expense{Description: "Internet", Amount: 150})

	rec = doJSON(t, h, http.MethodGet, "/finance/summary", nil)
	sum := decode[map[string]float64](t, rec)
	if sum["revenue"] != 200 || sum["cogs"] != 80 || sum["fixedExpenses"] != 150 || sum["profit"] != -30 {
		t.Fatalf("unexpected summary %v", sum)
	}
}
