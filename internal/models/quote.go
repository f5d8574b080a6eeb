package models

import (
	"errors"
	"fmt"
)

// Quote lifecycle statuses.
const (
	QuoteDraft     = "draft"
	QuoteSent      = "sent"
	QuoteApproved  = "approved"
	QuoteCompleted = "completed"
	QuoteInvoiced  = "invoiced"
)

// ErrBadTransition is returned when a status change is not allowed by
// the quote lifecycle.
var ErrBadTransition = errors.New("quote: status transition not allowed")

// quoteTransitions is the lifecycle table:
// draft -> sent -> approved -> completed -> invoiced, with draft/sent
// able to fall back to draft (rejection) and invoicing reachable
// straight from approved. Invoiced is terminal.
var quoteTransitions = map[string][]string{
	QuoteDraft:     {QuoteSent, QuoteApproved},
	QuoteSent:      {QuoteDraft, QuoteApproved},
	QuoteApproved:  {QuoteCompleted, QuoteInvoiced},
	QuoteCompleted: {QuoteInvoiced},
	QuoteInvoiced:  {},
}

// CanTransition reports whether a quote may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Quote item types.
const (
	ItemService = "service"
	ItemProduct = "product"
)

// QuoteItem is a line entry. Name and prices are snapshots taken when
// the item was added, not live catalog references. Total must always
// equal Quantity * UnitPrice; use Recalculate after mutating either.
type QuoteItem struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	CostPrice       float64 `json:"costPrice"`
	Total           float64 `json:"total"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

// Recalculate restores the line total invariant.
func (it *QuoteItem) Recalculate() { it.Total = it.Quantity * it.UnitPrice }

// Quote is the central transactional entity: a priced proposal with a
// lifecycle from draft to invoiced.
type Quote struct {
	ID                   string      `json:"id"`
	Date                 string      `json:"date"`
	ClientID             string      `json:"clientId"`
	ProjectName          string      `json:"projectName"`
	Scope                string      `json:"scope"`
	DeliveryTime         string      `json:"deliveryTime"`
	PaymentTerms         string      `json:"paymentTerms"`
	Items                []QuoteItem `json:"items"`
	TravelDistanceKm     float64     `json:"travelDistanceKm"`
	TravelCost           float64     `json:"travelCost"`
	Discount             float64     `json:"discount"`
	Subtotal             float64     `json:"subtotal"`
	Total                float64     `json:"total"`
	TotalDurationMinutes int         `json:"totalDurationMinutes"`
	Status               string      `json:"status"`
	NFSeNumber           string      `json:"nfseNumber,omitempty"`
	ReportData           *ReportData `json:"reportData,omitempty"`
}

// Recalculate recomputes every derived figure from the items, the
// travel distance, and the company's per-km rate:
//
//	subtotal = sum(item.total)
//	travel   = distanceKm * ratePerKm
//	duration = sum(item.duration * item.quantity)
//	total    = subtotal + travel - discount
func (q *Quote) Recalculate(travelRatePerKm float64) {
	q.Subtotal = 0
	q.TotalDurationMinutes = 0
	for i := range q.Items {
		q.Items[i].Recalculate()
		q.Subtotal += q.Items[i].Total
		q.TotalDurationMinutes += q.Items[i].DurationMinutes * int(q.Items[i].Quantity)
	}
	q.TravelCost = q.TravelDistanceKm * travelRatePerKm
	q.Total = q.Subtotal + q.TravelCost - q.Discount
}

// Transition moves the quote to a new status, enforcing the lifecycle
// table. Callers gate the approved->completed edge on a completed
// appointment; this method only checks the table itself.
func (q *Quote) Transition(to string) error {
	if !CanTransition(q.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, q.Status, to)
	}
	q.Status = to
	return nil
}

// ReportPhoto is a captioned photo reference inside a service report.
type ReportPhoto struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ReportData is embedded in a quote once execution completed.
type ReportData struct {
	Photos    []ReportPhoto `json:"photos"`
	Notes     string        `json:"notes"`
	FinalDate string        `json:"finalDate"`
}
