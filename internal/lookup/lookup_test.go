package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(handler http.Handler) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c := New()
	c.ViaCEPBase = srv.URL
	c.CNPJAPIBase = srv.URL
	return c, srv.Close
}

func TestCEP(t *testing.T) {
	c, done := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/80010000/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"cep":"80010-000","logradouro":"Rua XV de Novembro","bairro":"Centro","localidade":"Curitiba","uf":"PR"}`))
	}))
	defer done()

	addr, err := c.CEP(context.Background(), "80010-000")
	if err != nil {
		t.Fatalf("cep: %v", err)
	}
	if addr.City != "Curitiba" || addr.State != "PR" || addr.Street != "Rua XV de Novembro" {
		t.Fatalf("unexpected address %+v", addr)
	}
}

func TestCEPUnknownCode(t *testing.T) {
	c, done := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro":true}`))
	}))
	defer done()

	if _, err := c.CEP(context.Background(), "99999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCEPMalformed(t *testing.T) {
	c := New()
	if _, err := c.CEP(context.Background(), "123"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestCNPJ(t *testing.T) {
	c, done := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/12345678000190" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"cnpj":"12345678000190","razao_social":"VSI TELECOM LTDA","nome_fantasia":"VSI","municipio":"Curitiba","uf":"PR"}`))
	}))
	defer done()

	co, err := c.CNPJ(context.Background(), "12.345.678/0001-90")
	if err != nil {
		t.Fatalf("cnpj: %v", err)
	}
	if co.LegalName != "VSI TELECOM LTDA" || co.City != "Curitiba" {
		t.Fatalf("unexpected company %+v", co)
	}
}

func TestCNPJNotFound(t *testing.T) {
	c, done := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer done()

	if _, err := c.CNPJ(context.Background(), "12345678000190"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
