package service

import (
	"context"
	"sync"

	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/repository"
)

// MockCustomerRepository mocks CustomerRepository
type MockCustomerRepository struct {
	CreateFunc  func(ctx context.Context, customer *models.Customer) error
	GetByIDFunc func(ctx context.Context, id int) (*models.Customer, error)
	ListFunc    func(ctx context.Context, filters repository.CustomerFilters) ([]*models.Customer, int, error)
	UpdateFunc  func(ctx context.Context, customer *models.Customer) error
	DeleteFunc  func(ctx context.Context, id int) (int64, error)

	Calls map[string]int // Track method calls
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	customer.ID = 1
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	m.Calls["GetByID"]++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return newTestCustomer(id), nil
}

func (m *MockCustomerRepository) List(ctx context.Context, filters repository.CustomerFilters) ([]*models.Customer, int, error) {
	m.Calls["List"]++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return []*models.Customer{}, 0, nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	m.Calls["Update"]++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, customer)
	}
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int) (int64, error) {
	m.Calls["Delete"]++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return 0, nil
}

// MockAddressRepository mocks AddressRepository
type MockAddressRepository struct {
	ListByCustomerFunc func(ctx context.Context, customerID int) ([]*models.Address, error)
	GetByIDFunc        func(ctx context.Context, id int) (*models.Address, error)
	CreateFunc         func(ctx context.Context, address *models.Address) error
	UpdateFunc         func(ctx context.Context, address *models.Address) error
	DeleteFunc         func(ctx context.Context, id int) error

	Calls map[string]int
}

func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockAddressRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Address, error) {
	m.Calls["ListByCustomer"]++
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, customerID)
	}
	return []*models.Address{}, nil
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id int) (*models.Address, error) {
	m.Calls["GetByID"]++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.Address{ID: id, CustomerID: 1, Street: "1 Main", City: "Pune", State: "MH", ZipCode: "411001", AddressType: "home"}, nil
}

func (m *MockAddressRepository) Create(ctx context.Context, address *models.Address) error {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, address)
	}
	address.ID = 1
	return nil
}

func (m *MockAddressRepository) Update(ctx context.Context, address *models.Address) error {
	m.Calls["Update"]++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, address)
	}
	address.CustomerID = 1
	return nil
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int) error {
	m.Calls["Delete"]++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEventRepository mocks EventRepository
type MockEventRepository struct {
	SaveFunc           func(ctx context.Context, event *models.CustomerEvent) (bool, error)
	ListByCustomerFunc func(ctx context.Context, customerID, limit int) ([]*models.CustomerEvent, error)

	Calls map[string]int
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Calls: make(map[string]int),
	}
}

func (m *MockEventRepository) Save(ctx context.Context, event *models.CustomerEvent) (bool, error) {
	m.Calls["Save"]++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, event)
	}
	return true, nil
}

func (m *MockEventRepository) ListByCustomer(ctx context.Context, customerID, limit int) ([]*models.CustomerEvent, error) {
	m.Calls["ListByCustomer"]++
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, customerID, limit)
	}
	return []*models.CustomerEvent{}, nil
}

// MockPublisher records published events
type MockPublisher struct {
	PublishFunc func(ctx context.Context, event *models.CustomerEvent) error

	mu     sync.Mutex
	Events []*models.CustomerEvent
}

func (m *MockPublisher) PublishEvent(ctx context.Context, event *models.CustomerEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Types returns the types of the published events in order
func (m *MockPublisher) Types() []models.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]models.EventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

func newTestCustomer(id int) *models.Customer {
	return &models.Customer{
		ID:          id,
		FirstName:   "John",
		LastName:    "Doe",
		PhoneNumber: "9876543210",
	}
}

func strPtr(s string) *flexString {
	v := flexString(s)
	return &v
}
