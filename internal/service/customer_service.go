package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/repository"
)

const customerResource = "Customer"

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
	publisher    EventPublisher
}

// NewCustomerService creates a new customer service. publisher may be nil.
func NewCustomerService(customerRepo repository.CustomerRepository, publisher EventPublisher) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// ListCustomers returns one page of customers matching the filters
func (s *CustomerService) ListCustomers(ctx context.Context, filters repository.CustomerFilters) ([]*models.Customer, *PaginationInfo, error) {
	filters = filters.Normalize()

	customers, total, err := s.customerRepo.List(ctx, filters)
	if err != nil {
		return nil, nil, &StoreError{Err: err}
	}

	return customers, NewPaginationInfo(filters.Page, filters.Limit, total), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(customerResource, id, err)
	}
	return customer, nil
}

// CreateCustomer validates and stores a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	customer := req.toModel()
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, translateStoreError(customerResource, 0, err)
	}

	log.Info().Int("customer_id", customer.ID).Msg("Customer created")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventCustomerCreated, customer.ID, nil, customer))

	return customer, nil
}

// UpdateCustomer overwrites every field of an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *CustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	customer := req.toModel()
	customer.ID = id
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, translateStoreError(customerResource, id, err)
	}

	log.Info().Int("customer_id", id).Msg("Customer updated")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventCustomerUpdated, id, nil, customer))

	return customer, nil
}

// DeleteCustomer deletes a customer together with its addresses
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	removed, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return translateStoreError(customerResource, id, err)
	}

	log.Info().Int("customer_id", id).Int64("addresses_removed", removed).Msg("Customer deleted")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventCustomerDeleted, id, nil, map[string]int64{
		"addresses_removed": removed,
	}))

	return nil
}

// Request/Response types

// CustomerRequest is the body of customer create and update requests
type CustomerRequest struct {
	FirstName   flexString  `json:"first_name"`
	LastName    flexString  `json:"last_name"`
	PhoneNumber flexString  `json:"phone_number"`
	Email       *flexString `json:"email"`
}

// Validate checks the required customer fields
func (r *CustomerRequest) Validate() error {
	if !r.toModel().HasRequiredFields() {
		return fmt.Errorf("First name, last name, and phone number are required")
	}
	return nil
}

// toModel builds the customer to store; an empty email is stored as NULL
func (r *CustomerRequest) toModel() *models.Customer {
	customer := &models.Customer{
		FirstName:   string(r.FirstName),
		LastName:    string(r.LastName),
		PhoneNumber: string(r.PhoneNumber),
	}
	if r.Email != nil && *r.Email != "" {
		email := string(*r.Email)
		customer.Email = &email
	}
	return customer
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationInfo computes the page count for total matching rows
func NewPaginationInfo(page, limit, total int) *PaginationInfo {
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	return &PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}
