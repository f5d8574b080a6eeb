// Package lookup resolves Brazilian registry data used to prefill
// client forms: street addresses from a CEP and company records from a
// CNPJ.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

var (
	ErrNotFound   = errors.New("lookup: not found")
	ErrBadRequest = errors.New("lookup: malformed code")
)

var digitsRe = regexp.MustCompile(`\D`)

type Address struct {
	ZipCode      string `json:"zipCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Company struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legalName"`
	TradeName string `json:"tradeName"`
	ZipCode   string `json:"zipCode"`
	Street    string `json:"street"`
	Number    string `json:"number"`
	City      string `json:"city"`
	State     string `json:"state"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Client queries the public ViaCEP and BrasilAPI endpoints. Base URLs
// are fields so tests can point them at a local server.
type Client struct {
	HTTP        *http.Client
	ViaCEPBase  string
	CNPJAPIBase string
}

func New() *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		ViaCEPBase:  "https://viacep.com.br/ws",
		CNPJAPIBase: "https://brasilapi.com.br/api/cnpj/v1",
	}
}

// CEP resolves an 8-digit postal code. ViaCEP answers 200 with an
// {"erro":true} body for unknown codes, so that case is checked
// explicitly.
func (c *Client) CEP(ctx context.Context, cep string) (Address, error) {
	code := digitsRe.ReplaceAllString(cep, "")
	if len(code) != 8 {
		return Address{}, fmt.Errorf("%w: cep %q", ErrBadRequest, cep)
	}
	var body struct {
		Erro       bool   `json:"erro"`
		CEP        string `json:"cep"`
		Logradouro string `json:"logradouro"`
		Bairro     string `json:"bairro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/json/", c.ViaCEPBase, code), &body); err != nil {
		return Address{}, err
	}
	if body.Erro {
		return Address{}, fmt.Errorf("%w: cep %s", ErrNotFound, code)
	}
	return Address{
		ZipCode:      body.CEP,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}

// CNPJ resolves a 14-digit company registry number.
func (c *Client) CNPJ(ctx context.Context, cnpj string) (Company, error) {
	code := digitsRe.ReplaceAllString(cnpj, "")
	if len(code) != 14 {
		return Company{}, fmt.Errorf("%w: cnpj %q", ErrBadRequest, cnpj)
	}
	var body struct {
		CNPJ         string `json:"cnpj"`
		RazaoSocial  string `json:"razao_social"`
		NomeFantasia string `json:"nome_fantasia"`
		CEP          string `json:"cep"`
		Logradouro   string `json:"logradouro"`
		Numero       string `json:"numero"`
		Municipio    string `json:"municipio"`
		UF           string `json:"uf"`
		Telefone     string `json:"ddd_telefone_1"`
		Email        string `json:"email"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.CNPJAPIBase, code), &body); err != nil {
		return Company{}, err
	}
	return Company{
		CNPJ:      body.CNPJ,
		LegalName: body.RazaoSocial,
		TradeName: body.NomeFantasia,
		ZipCode:   body.CEP,
		Street:    body.Logradouro,
		Number:    body.Numero,
		City:      body.Municipio,
		State:     body.UF,
		Phone:     body.Telefone,
		Email:     body.Email,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("lookup: build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lookup: decode response: %w", err)
	}
	return nil
}
