package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/models"
)

const customerColumns = "id, first_name, last_name, phone_number, email"

type customerRepository struct {
	db *database.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *database.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := r.db.Rebind(`
		INSERT INTO customers (first_name, last_name, phone_number, email)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.PhoneNumber,
		customer.Email,
	).Scan(&customer.ID)

	if err != nil {
		if r.db.Dialect().IsUniqueViolation(err) {
			return fmt.Errorf("failed to create customer: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	query := r.db.Rebind(`SELECT ` + customerColumns + ` FROM customers WHERE id = ?`)

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// List retrieves customers matching the filters plus the total number of matches
func (r *customerRepository) List(ctx context.Context, filters CustomerFilters) ([]*models.Customer, int, error) {
	filters = filters.Normalize()
	where, args := customerPredicates(filters, r.db.Dialect().Like()).where()

	// ORDER BY id keeps pages stable between requests
	query := r.db.Rebind(`SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY id ASC LIMIT ? OFFSET ?`)
	pageArgs := append(append([]interface{}{}, args...), filters.Limit, filters.Offset())

	rows, err := r.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate customers: %w", err)
	}

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM customers` + where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	return customers, total, nil
}

// Update overwrites every field of a customer
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := r.db.Rebind(`
		UPDATE customers
		SET first_name = ?, last_name = ?, phone_number = ?, email = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.PhoneNumber,
		customer.Email,
		customer.ID,
	)

	if err != nil {
		if r.db.Dialect().IsUniqueViolation(err) {
			return fmt.Errorf("failed to update customer: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to update customer: %w", err)
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

// Delete deletes a customer after its addresses. Both statements share one
// transaction, so a missing customer leaves the addresses untouched.
func (r *customerRepository) Delete(ctx context.Context, id int) (int64, error) {
	var removed int64

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM addresses WHERE customer_id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete customer addresses: %w", err)
		}
		if removed, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		result, err = tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.PhoneNumber,
		&customer.Email,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}
