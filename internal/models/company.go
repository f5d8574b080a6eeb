package models

// CompanyProfile is the installer's own identity, a singleton record.
// It is created with defaults on first boot and only ever mutated via
// the settings screen; it is never deleted.
type CompanyProfile struct {
	Name            string  `json:"name"`
	CNPJ            string  `json:"cnpj"`
	Address         string  `json:"address"`
	Number          string  `json:"number"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Phone           string  `json:"phone"`
	SecondaryPhone  string  `json:"secondaryPhone,omitempty"`
	Email           string  `json:"email"`
	Website         string  `json:"website,omitempty"`
	LogoURL         string  `json:"logoUrl,omitempty"`
	ServiceTaxRate  float64 `json:"serviceTaxRate"`
	TravelRatePerKm float64 `json:"travelRatePerKm"`
}

// DefaultCompanyProfile mirrors the record the app seeds before any
// settings have been saved.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{Name: "Sua Empresa"}
}
