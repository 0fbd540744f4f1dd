package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/models"
)

const addressColumns = "id, customer_id, street, city, state, zip_code, address_type, is_primary"

type addressRepository struct {
	db *database.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *database.DB) AddressRepository {
	return &addressRepository{db: db}
}

// ListByCustomer returns the addresses of a customer, empty when there are none
func (r *addressRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Address, error) {
	query := r.db.Rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE customer_id = ? ORDER BY id ASC`)

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*models.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate addresses: %w", err)
	}

	return addresses, nil
}

// GetByID retrieves an address by ID
func (r *addressRepository) GetByID(ctx context.Context, id int) (*models.Address, error) {
	query := r.db.Rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE id = ?`)

	address, err := scanAddress(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return address, nil
}

// Create inserts an address. The owning customer is not checked.
func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	address.ApplyDefaults()

	query := r.db.Rebind(`
		INSERT INTO addresses (customer_id, street, city, state, zip_code, address_type, is_primary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(
		ctx,
		query,
		address.CustomerID,
		address.Street,
		address.City,
		address.State,
		address.ZipCode,
		address.AddressType,
		boolToInt(address.IsPrimary),
	).Scan(&address.ID)

	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// Update overwrites an address by ID and reads back its owning customer
func (r *addressRepository) Update(ctx context.Context, address *models.Address) error {
	address.ApplyDefaults()

	query := r.db.Rebind(`
		UPDATE addresses
		SET street = ?, city = ?, state = ?, zip_code = ?, address_type = ?, is_primary = ?
		WHERE id = ?
		RETURNING customer_id
	`)

	var customerID sql.NullInt64
	err := r.db.QueryRowContext(
		ctx,
		query,
		address.Street,
		address.City,
		address.State,
		address.ZipCode,
		address.AddressType,
		boolToInt(address.IsPrimary),
		address.ID,
	).Scan(&customerID)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	address.CustomerID = int(customerID.Int64)
	return nil
}

// Delete deletes an address by ID
func (r *addressRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM addresses WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func scanAddress(row rowScanner) (*models.Address, error) {
	address := &models.Address{}
	var customerID sql.NullInt64
	var addressType sql.NullString
	var isPrimary sql.NullBool

	err := row.Scan(
		&address.ID,
		&customerID,
		&address.Street,
		&address.City,
		&address.State,
		&address.ZipCode,
		&addressType,
		&isPrimary,
	)
	if err != nil {
		return nil, err
	}

	address.CustomerID = int(customerID.Int64)
	address.AddressType = addressType.String
	address.IsPrimary = isPrimary.Bool
	address.ApplyDefaults()

	return address, nil
}
