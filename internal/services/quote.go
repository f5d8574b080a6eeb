package services

import (
	"github.com/google/uuid"

	"github.com/vsitelecom/fieldops/internal/models"
)

// QuoteService encapsulates quote assembly: snapshotting catalog items
// into lines and keeping the derived figures consistent.
type QuoteService struct{}

func NewQuoteService() *QuoteService { return &QuoteService{} }

// ItemFromService copies a catalog service into a quote line. The
// hourly rate and cost are snapshotted; later catalog edits do not
// touch existing quotes.
func (s *QuoteService) ItemFromService(svc models.Service, quantity float64) models.QuoteItem {
	it := models.QuoteItem{
		ID:              uuid.NewString(),
		Type:            models.ItemService,
		Description:     svc.Name,
		Quantity:        quantity,
		UnitPrice:       svc.HourlyRate,
		CostPrice:       svc.CostPrice,
		DurationMinutes: svc.DurationMinutes,
	}
	it.Recalculate()
	return it
}

// ItemFromProduct copies a catalog product into a quote line.
func (s *QuoteService) ItemFromProduct(p models.Product, quantity float64) models.QuoteItem {
	it := models.QuoteItem{
		ID:          uuid.NewString(),
		Type:        models.ItemProduct,
		Description: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		CostPrice:   p.CostPrice,
	}
	it.Recalculate()
	return it
}
