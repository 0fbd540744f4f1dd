package models

// Customer represents a customer in the directory
type Customer struct {
	ID          int     `json:"id" db:"id"`
	FirstName   string  `json:"first_name" db:"first_name"`
	LastName    string  `json:"last_name" db:"last_name"`
	PhoneNumber string  `json:"phone_number" db:"phone_number"`
	Email       *string `json:"email" db:"email"`
}

// FullName returns the customer's full name
func (c *Customer) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}

// HasRequiredFields reports whether first name, last name and phone number are all set
func (c *Customer) HasRequiredFields() bool {
	return c.FirstName != "" && c.LastName != "" && c.PhoneNumber != ""
}
