package models

// Expense is a standalone cost record; it only feeds aggregate
// financial reporting and never references quotes.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Category    string  `json:"category"`
}
