package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shashank9666/qwipo-backend/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Customers *CustomerHandler
	Addresses *AddressHandler
	Health    *HealthHandler
}

// NewRouter registers every API route and wraps the router in the
// middleware chain. CORS runs first so preflight requests never reach the router.
func NewRouter(h Handlers, cors middleware.CORSConfig) http.Handler {
	router := mux.NewRouter()

	if h.Health != nil {
		router.HandleFunc("/health", h.Health.HandleHealth).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/customers", h.Customers.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", h.Customers.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", h.Customers.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.Customers.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", h.Customers.Delete).Methods(http.MethodDelete)
	if h.Customers.eventService != nil {
		api.HandleFunc("/customers/{id}/events", h.Customers.ListEvents).Methods(http.MethodGet)
	}

	api.HandleFunc("/customers/{id}/addresses", h.Addresses.ListByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/addresses", h.Addresses.Create).Methods(http.MethodPost)
	api.HandleFunc("/addresses/{addressId}", h.Addresses.Update).Methods(http.MethodPut)
	api.HandleFunc("/addresses/{addressId}", h.Addresses.Delete).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	var handler http.Handler = router
	handler = middleware.Recovery(handler)
	handler = middleware.Logger(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cors)(handler)

	return handler
}
