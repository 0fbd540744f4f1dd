package repository

import (
	"context"
	"errors"

	"github.com/shashank9666/qwipo-backend/internal/models"
)

// Sentinel errors returned by every repository
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Pagination defaults of the customer list
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// MaxEventLimit bounds one page of customer events
const MaxEventLimit = 100

// CustomerRepository defines customer data access operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int) (*models.Customer, error)
	List(ctx context.Context, filters CustomerFilters) ([]*models.Customer, int, error)
	Update(ctx context.Context, customer *models.Customer) error
	// Delete removes the customer and its addresses in one transaction and
	// returns how many addresses were removed
	Delete(ctx context.Context, id int) (int64, error)
}

// AddressRepository defines address data access operations
type AddressRepository interface {
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Address, error)
	GetByID(ctx context.Context, id int) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id int) error
}

// EventRepository defines customer event storage operations
type EventRepository interface {
	// Save stores the event and reports false when it was already stored
	Save(ctx context.Context, event *models.CustomerEvent) (bool, error)
	ListByCustomer(ctx context.Context, customerID, limit int) ([]*models.CustomerEvent, error)
}

// CustomerFilters defines filters for listing customers
type CustomerFilters struct {
	Search string
	City   string
	Page   int
	Limit  int
}

// Normalize replaces missing or non-positive pagination values with the defaults
func (f CustomerFilters) Normalize() CustomerFilters {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	return f
}

// Offset returns the number of rows skipped before the requested page
func (f CustomerFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
