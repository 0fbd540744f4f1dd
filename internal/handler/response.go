package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/service"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse is the envelope of customer reads and writes
type DataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is the envelope of the paginated customer list
type ListResponse struct {
	Message    string                  `json:"message"`
	Data       interface{}             `json:"data"`
	Pagination *service.PaginationInfo `json:"pagination"`
}

// MutationResponse is the envelope of address writes
type MutationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const messageSuccess = "success"

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		return err
	}

	return nil
}

// WriteError writes a {"error": message} response
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteOK writes a 200 OK response with the given data
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteValidationError writes a 400 Bad Request response
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFoundError writes a 404 Not Found response naming the resource
func WriteNotFoundError(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, resource+" not found")
}

// WriteInternalError writes a 500 response without exposing internal details
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// HandleServiceError maps service layer errors to appropriate HTTP responses.
// Store failures are reported as client errors with the store's message.
func HandleServiceError(w http.ResponseWriter, err error) {
	var (
		notFound   *service.NotFoundError
		validation *service.ValidationError
		conflict   *service.ConflictError
		store      *service.StoreError
	)

	switch {
	case errors.As(err, &notFound):
		WriteNotFoundError(w, notFound.Resource)
	case errors.As(err, &validation):
		WriteValidationError(w, validation.Message)
	case errors.As(err, &conflict):
		WriteError(w, http.StatusBadRequest, conflict.Message)
	case errors.As(err, &store):
		log.Warn().Err(store.Err).Msg("Store operation failed")
		WriteError(w, http.StatusBadRequest, store.Error())
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		WriteInternalError(w)
	}
}

// decodeJSON decodes a request body into dst. An empty body leaves dst at its
// zero value so that field validation reports what is missing.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// parseID parses an integer path parameter. Ids that match no row are left
// to the store to report.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parsePositiveInt parses a query parameter, falling back when it is missing
// or not a positive integer
func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
