package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shashank9666/qwipo-backend/internal/service"
)

// AddressHandler handles address HTTP requests
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// ListByCustomer handles GET /api/customers/{id}/addresses
func (h *AddressHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	addresses, err := h.addressService.ListAddresses(r.Context(), customerID)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: messageSuccess, Data: addresses})
}

// Create handles POST /api/customers/{id}/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		WriteValidationError(w, "Invalid customer ID")
		return
	}

	var req service.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	address, err := h.addressService.CreateAddress(r.Context(), customerID, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, MutationResponse{
		Success: true,
		Message: "Address added successfully",
		Data:    address,
	})
}

// Update handles PUT /api/addresses/{addressId}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	addressID, ok := parseID(mux.Vars(r)["addressId"])
	if !ok {
		WriteValidationError(w, "Invalid address ID")
		return
	}

	var req service.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteValidationError(w, "Invalid request body")
		return
	}

	address, err := h.addressService.UpdateAddress(r.Context(), addressID, &req)
	if err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, MutationResponse{
		Success: true,
		Message: "Address updated successfully",
		Data:    address,
	})
}

// Delete handles DELETE /api/addresses/{addressId}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	addressID, ok := parseID(mux.Vars(r)["addressId"])
	if !ok {
		WriteValidationError(w, "Invalid address ID")
		return
	}

	if err := h.addressService.DeleteAddress(r.Context(), addressID); err != nil {
		HandleServiceError(w, err)
		return
	}

	WriteOK(w, DataResponse{Message: "Address deleted successfully"})
}
