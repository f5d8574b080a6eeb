package handlers

import (
	"fmt"
	"net/http"

	"github.com/vsitelecom/fieldops/internal/httpx"
	"github.com/vsitelecom/fieldops/internal/models"
	"github.com/vsitelecom/fieldops/internal/pdf"
	appsync "github.com/vsitelecom/fieldops/internal/sync"
	"github.com/vsitelecom/fieldops/internal/validation"
)

type QuoteHandler struct {
	Coord *appsync.Coordinator
}

func NewQuoteHandler(c *appsync.Coordinator) *QuoteHandler { return &QuoteHandler{Coord: c} }

// List: GET /quotes
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Coord.Snapshot().Quotes)
}

// Save: POST /quotes – totals are recomputed server-side.
func (h *QuoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.Quote
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("clientId", in.ClientID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Coord.SaveQuote(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// Status: POST /quotes/status – walks the lifecycle state machine.
func (h *QuoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.Required("status", in.Status, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	q, err := h.Coord.ChangeQuoteStatus(in.ID, in.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Invoice: POST /quotes/invoice – records the fiscal note number.
func (h *QuoteHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID         string `json:"id"`
		NFSeNumber string `json:"nfseNumber"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.Required("nfseNumber", in.NFSeNumber, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	q, err := h.Coord.InvoiceQuote(in.ID, in.NFSeNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Report: POST /quotes/report – attaches the technical report.
func (h *QuoteHandler) Report(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID     string            `json:"id"`
		Report models.ReportData `json:"report"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	q, err := h.Coord.AttachReport(in.ID, in.Report)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Delete: POST /quotes/delete?id=... – allowed from any state.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := h.Coord.DeleteQuote(id); err != nil {
		writeDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PDF: GET /quotes/pdf?id=...
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	snap := h.Coord.Snapshot()
	q, found := findQuote(snap.Quotes, id)
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	data := pdf.QuoteData{
		Number:       shortID(q.ID),
		Date:         q.Date,
		Status:       q.Status,
		ProjectName:  q.ProjectName,
		Scope:        q.Scope,
		DeliveryTime: q.DeliveryTime,
		PaymentTerms: q.PaymentTerms,
		NFSeNumber:   q.NFSeNumber,
		Company:      companyData(snap.Company),
		Client:       clientData(snap.Clients, q.ClientID),
		Subtotal:     q.Subtotal,
		TravelCost:   q.TravelCost,
		Discount:     q.Discount,
		Total:        q.Total,
	}
	for _, it := range q.Items {
		data.Items = append(data.Items, pdf.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	body, err := pdf.QuotePDF(data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.PDF(w, "orcamento-"+shortID(q.ID)+".pdf", body)
}

// ReportPDF: GET /quotes/report-pdf?id=...
func (h *QuoteHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	snap := h.Coord.Snapshot()
	q, found := findQuote(snap.Quotes, id)
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if q.ReportData == nil {
		httpx.JSONError(w, http.StatusConflict, "no_report", nil)
		return
	}
	data := pdf.ReportData{
		QuoteNumber: shortID(q.ID),
		ProjectName: q.ProjectName,
		FinalDate:   q.ReportData.FinalDate,
		Notes:       q.ReportData.Notes,
		Company:     companyData(snap.Company),
		Client:      clientData(snap.Clients, q.ClientID),
	}
	for _, p := range q.ReportData.Photos {
		data.Photos = append(data.Photos, pdf.PhotoData{Caption: p.Caption, URL: p.URL})
	}
	body, err := pdf.ReportPDF(data)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.PDF(w, "relatorio-"+shortID(q.ID)+".pdf", body)
}

func findQuote(quotes []models.Quote, id string) (models.Quote, bool) {
	for _, q := range quotes {
		if q.ID == id {
			return q, true
		}
	}
	return models.Quote{}, false
}

// shortID is the human-facing document number derived from the uuid.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func companyData(c models.CompanyProfile) pdf.CompanyData {
	addr := c.Address
	if c.Number != "" {
		addr = fmt.Sprintf("%s, %s", c.Address, c.Number)
	}
	if c.City != "" {
		addr += " - " + c.City
	}
	if c.State != "" {
		addr += "/" + c.State
	}
	return pdf.CompanyData{
		Name:    c.Name,
		CNPJ:    c.CNPJ,
		Address: addr,
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
	}
}

func clientData(clients []models.Client, id string) pdf.ClientData {
	for _, cl := range clients {
		if cl.ID == id {
			addr := cl.Address
			if cl.Number != "" {
				addr = fmt.Sprintf("%s, %s", cl.Address, cl.Number)
			}
			return pdf.ClientData{
				Name:     cl.Name,
				Document: cl.Document,
				Address:  addr,
				Phone:    cl.Phone,
				Email:    cl.Email,
			}
		}
	}
	return pdf.ClientData{Name: "Cliente nao encontrado"}
}
