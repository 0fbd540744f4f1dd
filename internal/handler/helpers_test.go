package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/middleware"
	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/repository"
	"github.com/shashank9666/qwipo-backend/internal/service"
)

const testOrigin = "http://localhost:5173"

// recordingPublisher keeps published events in memory
type recordingPublisher struct {
	events []*models.CustomerEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event *models.CustomerEvent) error {
	p.events = append(p.events, event)
	return nil
}

type testServer struct {
	handler   http.Handler
	db        *database.DB
	publisher *recordingPublisher
}

// setupTestServer wires the full stack against a migrated SQLite file
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=busy_timeout(5000)"
	db, err := database.Open(ctx, database.Options{Driver: "sqlite", DSN: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	publisher := &recordingPublisher{}
	return &testServer{
		handler:   newTestRouter(db, publisher),
		db:        db,
		publisher: publisher,
	}
}

func newTestRouter(db *database.DB, publisher service.EventPublisher) http.Handler {
	customerSvc := service.NewCustomerService(repository.NewCustomerRepository(db), publisher)
	addressSvc := service.NewAddressService(repository.NewAddressRepository(db), publisher)
	eventSvc := service.NewEventService(repository.NewEventRepository(db))

	return NewRouter(Handlers{
		Customers: NewCustomerHandler(customerSvc, eventSvc),
		Addresses: NewAddressHandler(addressSvc),
		Health:    NewHealthHandler(service.NewHealthService(db, nil, "test")),
	}, middleware.DefaultCORSConfig(testOrigin))
}

// MakeRequest performs a request against the handler and returns the recorder
func (s *testServer) MakeRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return makeRequest(t, s.handler, method, path, body)
}

func makeRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ParseJSONResponse decodes the response body into a generic map
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to parse response %q: %v", rr.Body.String(), err)
	}
	return out
}

// AssertStatusCode checks the HTTP status code
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("Expected status %d but got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// AssertErrorMessage checks a {"error": message} response
func AssertErrorMessage(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	body := ParseJSONResponse(t, rr)
	if body["error"] != want {
		t.Errorf("Expected error %q but got %v", want, body["error"])
	}
}

// createCustomer posts a customer and returns its id
func (s *testServer) createCustomer(t *testing.T, first, last, phone string) int {
	t.Helper()

	rr := s.MakeRequest(t, http.MethodPost, "/api/customers", map[string]string{
		"first_name":   first,
		"last_name":    last,
		"phone_number": phone,
	})
	AssertStatusCode(t, rr, http.StatusOK)

	data := ParseJSONResponse(t, rr)["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

// createAddress posts an address and returns its id
func (s *testServer) createAddress(t *testing.T, customerID int, city string) int {
	t.Helper()

	rr := s.MakeRequest(t, http.MethodPost, customerPath(customerID)+"/addresses", map[string]interface{}{
		"street":   "1 Test Street",
		"city":     city,
		"state":    "TS",
		"zip_code": "100001",
	})
	AssertStatusCode(t, rr, http.StatusOK)

	data := ParseJSONResponse(t, rr)["data"].(map[string]interface{})
	return int(data["id"].(float64))
}
