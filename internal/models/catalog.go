package models

// Catalog items. Products and services are independent collections;
// quote items snapshot name and price at add time rather than keeping a
// live link back to the catalog.

type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"costPrice"`
	Unit      string  `json:"unit"`
}

type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	HourlyRate      float64 `json:"hourlyRate"`
	CostPrice       float64 `json:"costPrice"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes"`
}
