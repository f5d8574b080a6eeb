package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vsitelecom/fieldops/internal/connectivity"
	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/store"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
)

func testCoordinator(t *testing.T) *appsync.Coordinator {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	c, err := appsync.New(st, nil, connectivity.New(false), zerolog.Nop())
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return c
}

func TestQuotePDFEndpoint(t *testing.T) {
	coord := testCoordinator(t)
	if _, err := coord.SaveClient(models.Client{ID: "c1", Name: "Mercado Silva"}); err != nil {
		t.Fatalf("save client: %v", err)
	}
	q, err := coord.SaveQuote(models.Quote{
		ClientID: "c1",
		Items:    []models.QuoteItem{{Type: models.ItemProduct, Description: "Camera", Quantity: 2, UnitPrice: 400}},
	})
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	h := NewQuoteHandler(coord)
	rec := httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/quotes/pdf?id="+q.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF body")
	}
}

func TestQuotePDFUnknownID(t *testing.T) {
	h := NewQuoteHandler(testCoordinator(t))
	rec := httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/quotes/pdf?id=missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReportPDFRequiresReport(t *testing.T) {
	coord := testCoordinator(t)
	q, err := coord.SaveQuote(models.Quote{ClientID: "c1"})
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}
	h := NewQuoteHandler(coord)

	rec := httptest.NewRecorder()
	h.ReportPDF(rec, httptest.NewRequest(http.MethodGet, "/quotes/report-pdf?id="+q.ID, nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without report, got %d", rec.Code)
	}

	if _, err := coord.AttachReport(q.ID, models.ReportData{Notes: "ok", FinalDate: "2026-09-15"}); err != nil {
		t.Fatalf("attach report: %v", err)
	}
	rec = httptest.NewRecorder()
	h.ReportPDF(rec, httptest.NewRequest(http.MethodGet, "/quotes/report-pdf?id="+q.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with report, got %d (%s)", rec.Code, rec.Body.String())
	}
}
