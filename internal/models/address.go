package models

// ShippingAddress is a delivery destination entered at checkout.
type ShippingAddress struct {
	FullName     string `json:"full_name" db:"full_name"`
	Phone        string `json:"phone" db:"phone"`
	AddressLine1 string `json:"address_line_1" db:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty" db:"address_line_2"`
	City         string `json:"city" db:"city"`
	State        string `json:"state" db:"state"`
	PostalCode   string `json:"postal_code,omitempty" db:"postal_code"`
	Country      string `json:"country,omitempty" db:"country"`
}
