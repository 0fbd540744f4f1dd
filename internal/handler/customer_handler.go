package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shashank9666/qwipo-backend/internal/repository"
	"github.com/shashank9666/qwipo-backend/internal/service"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	eventService    *service.EventService
}

// NewCustomerHandler creates a new customer handler. eventService may be nil,
// in which case the events endpoint is not registered.
func NewCustomerHandler(customerService *service.CustomerService, eventService *service.EventService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		eventService:    eventService,
	}
}

// List handles GET /api/customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := repository.CustomerFilters{
		Search: query.Get("search"),
		City:   query.Get("city"),
		Page:   parsePositiveInt(query.Get("page"), repository.DefaultPage),
		Limit:  parsePositiveInt(query.Get("limit"), repository.DefaultLimit),
	}

	customers, pagination, err := h.customerService.ListCustomers(r.Context(), filters)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, ListResponse{
		Message:    messageSuccess,
		Data:       customers,
		Pagination: pagination,
	})
}

// GetByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: messageSuccess, Data: customer})
}

// Create handles POST /api/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: messageSuccess, Data: customer})
}

// Update handles PUT /api/customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	var req service.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: messageSuccess, Data: customer})
}

// Delete handles DELETE /api/customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: "Customer deleted successfully"})
}

// ListEvents handles GET /api/customers/{id}/events
func (h *CustomerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	limit := parsePositiveInt(r.URL.Query().Get("limit"), service.DefaultEventLimit)
	events, err := h.eventService.ListCustomerEvents(r.Context(), id, limit)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: messageSuccess, Data: events})
}
