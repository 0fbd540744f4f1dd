package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/models"
)

// setupTestDB opens a migrated SQLite store in a temporary directory
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "repo.db") + "?_pragma=busy_timeout(5000)"
	db, err := database.Open(ctx, database.Options{Driver: "sqlite", DSN: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestCustomer(t *testing.T, repo CustomerRepository, first, last, phone string) *models.Customer {
	t.Helper()

	customer := &models.Customer{FirstName: first, LastName: last, PhoneNumber: phone}
	if err := repo.Create(context.Background(), customer); err != nil {
		t.Fatalf("failed to create customer %s: %v", first, err)
	}
	return customer
}

func createTestAddress(t *testing.T, repo AddressRepository, customerID int, city string) *models.Address {
	t.Helper()

	address := &models.Address{
		CustomerID: customerID,
		Street:     "1 Test Street",
		City:       city,
		State:      "TS",
		ZipCode:    "100001",
	}
	if err := repo.Create(context.Background(), address); err != nil {
		t.Fatalf("failed to create address in %s: %v", city, err)
	}
	return address
}

func strPtr(s string) *string {
	return &s
}
