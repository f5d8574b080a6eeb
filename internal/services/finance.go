package services

import "github.com/vsitelecom/fieldops/internal/models"

// FinanceService aggregates the money view shown on the finance
// screen. Revenue counts quotes that were approved or already
// invoiced; cost of goods comes from the item cost snapshots on those
// same quotes.
type FinanceService struct{}

func NewFinanceService() *FinanceService { return &FinanceService{} }

type FinanceSummary struct {
	Revenue       float64 `json:"revenue"`
	COGS          float64 `json:"cogs"`
	FixedExpenses float64 `json:"fixedExpenses"`
	Profit        float64 `json:"profit"`
}

func (s *FinanceService) Summarize(quotes []models.Quote, expenses []models.Expense) FinanceSummary {
	var out FinanceSummary
	for _, q := range quotes {
		if q.Status != models.QuoteApproved && q.Status != models.QuoteInvoiced {
			continue
		}
		out.Revenue += q.Total
		for _, it := range q.Items {
			out.COGS += it.CostPrice * it.Quantity
		}
	}
	for _, e := range expenses {
		out.FixedExpenses += e.Amount
	}
	out.Profit = out.Revenue - out.COGS - out.FixedExpenses
	return out
}
