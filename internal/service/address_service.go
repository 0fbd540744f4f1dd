package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/repository"
)

const addressResource = "Address"

// AddressService handles address business logic
type AddressService struct {
	addressRepo repository.AddressRepository
	publisher   EventPublisher
}

// NewAddressService creates a new address service. publisher may be nil.
func NewAddressService(addressRepo repository.AddressRepository, publisher EventPublisher) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		publisher:   publisher,
	}
}

// ListAddresses returns the addresses of a customer. An unknown customer has
// no addresses, which is not an error.
func (s *AddressService) ListAddresses(ctx context.Context, customerID int) ([]*models.Address, error) {
	addresses, err := s.addressRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return addresses, nil
}

// CreateAddress stores a new address for the customer
func (s *AddressService) CreateAddress(ctx context.Context, customerID int, req *AddressRequest) (*models.Address, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	address := req.toModel()
	address.CustomerID = customerID
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, &StoreError{Err: err}
	}

	log.Info().Int("customer_id", customerID).Int("address_id", address.ID).Msg("Address created")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventAddressCreated, customerID, &address.ID, address))

	return address, nil
}

// UpdateAddress overwrites every field of an existing address
func (s *AddressService) UpdateAddress(ctx context.Context, addressID int, req *AddressRequest) (*models.Address, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	address := req.toModel()
	address.ID = addressID
	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, translateStoreError(addressResource, addressID, err)
	}

	log.Info().Int("address_id", addressID).Msg("Address updated")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventAddressUpdated, address.CustomerID, &address.ID, address))

	return address, nil
}

// DeleteAddress deletes an address by ID
func (s *AddressService) DeleteAddress(ctx context.Context, addressID int) error {
	// looked up first so the event can name the owning customer
	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return translateStoreError(addressResource, addressID, err)
	}

	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return translateStoreError(addressResource, addressID, err)
	}

	log.Info().Int("address_id", addressID).Msg("Address deleted")
	publishEvent(ctx, s.publisher, models.NewCustomerEvent(models.EventAddressDeleted, address.CustomerID, &address.ID, nil))

	return nil
}

// AddressRequest is the body of address create and update requests
type AddressRequest struct {
	Street      flexString `json:"street"`
	City        flexString `json:"city"`
	State       flexString `json:"state"`
	ZipCode     flexString `json:"zip_code"`
	AddressType flexString `json:"address_type"`
	IsPrimary   flexBool   `json:"is_primary"`
}

// Validate checks the required address fields
func (r *AddressRequest) Validate() error {
	if !r.toModel().HasRequiredFields() {
		return fmt.Errorf("Street, city, state, and ZIP code are required")
	}
	return nil
}

func (r *AddressRequest) toModel() *models.Address {
	address := &models.Address{
		Street:      string(r.Street),
		City:        string(r.City),
		State:       string(r.State),
		ZipCode:     string(r.ZipCode),
		AddressType: string(r.AddressType),
		IsPrimary:   bool(r.IsPrimary),
	}
	address.ApplyDefaults()
	return address
}
