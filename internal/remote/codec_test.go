package remote

import (
	"testing"

	"github.com/vsitelecom/fieldops/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := models.Client{ID: "c1", Name: "Predio Gama", Document: "11222333000144", Phone: "11988887777"}
	row, err := EncodeRow(c.ID, c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeRows[models.Client](Clients, []Row{row})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0] != c {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDecodeRejectsMalformedDoc(t *testing.T) {
	rows := []Row{
		{ID: "ok", Doc: []byte(`{"id":"ok","name":"fine"}`)},
		{ID: "bad", Doc: []byte(`{"id":"bad","name":123notjson`)},
	}
	if _, err := DecodeRows[models.Client](Clients, rows); err == nil {
		t.Fatal("expected malformed row to fail the collection")
	}
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	// A document whose fields cannot fit the local type must fail fast
	// instead of silently zeroing values.
	rows := []Row{{ID: "q1", Doc: []byte(`{"id":"q1","items":"not-a-list"}`)}}
	if _, err := DecodeRows[models.Quote](Quotes, rows); err == nil {
		t.Fatal("expected shape mismatch to fail")
	}
}

func TestDecodeRejectsEmptyID(t *testing.T) {
	rows := []Row{{ID: "", Doc: []byte(`{}`)}}
	if _, err := DecodeRows[models.Expense](Expenses, rows); err == nil {
		t.Fatal("expected empty id to fail")
	}
}
