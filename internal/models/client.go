package models

// Client entity. GPS coordinates are optional and filled when the
// address was resolved via lookup. Deleting a client does not cascade
// to quotes referencing it; Quote.ClientID may dangle.
type Client struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Document  string   `json:"document"`
	ZipCode   string   `json:"zipCode,omitempty"`
	Address   string   `json:"address"`
	Number    string   `json:"number"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
