package models

// DefaultAddressType is used when an address is saved without a type
const DefaultAddressType = "home"

// Address represents a postal address owned by a customer
type Address struct {
	ID          int    `json:"id" db:"id"`
	CustomerID  int    `json:"customer_id" db:"customer_id"`
	Street      string `json:"street" db:"street"`
	City        string `json:"city" db:"city"`
	State       string `json:"state" db:"state"`
	ZipCode     string `json:"zip_code" db:"zip_code"`
	AddressType string `json:"address_type" db:"address_type"`
	IsPrimary   bool   `json:"is_primary" db:"is_primary"`
}

// HasRequiredFields reports whether street, city, state and zip code are all set
func (a *Address) HasRequiredFields() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.ZipCode != ""
}

// ApplyDefaults fills in the address type when it is missing
func (a *Address) ApplyDefaults() {
	if a.AddressType == "" {
		a.AddressType = DefaultAddressType
	}
}
