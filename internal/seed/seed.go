// Package seed loads the sample customer directory used in development.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/database"
)

// Options controls a seeding run
type Options struct {
	// Clear deletes every address and customer before inserting
	Clear bool
}

// CustomerSummary is one row of the post-seed report
type CustomerSummary struct {
	ID           int
	FirstName    string
	LastName     string
	PhoneNumber  string
	AddressCount int
}

// Result reports what a seeding run changed
type Result struct {
	CustomersInserted int
	CustomersSkipped  int
	AddressesInserted int
	Summary           []CustomerSummary
}

// TotalAddresses sums the address counts of the summary
func (r *Result) TotalAddresses() int {
	total := 0
	for _, s := range r.Summary {
		total += s.AddressCount
	}
	return total
}

// Run inserts the sample data in one transaction. Customers whose phone number
// already exists are skipped together with their addresses, so running it
// twice does not duplicate anything.
func Run(ctx context.Context, db *database.DB, opts Options) (*Result, error) {
	result := &Result{}

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		if opts.Clear {
			if err := clearData(ctx, tx); err != nil {
				return err
			}
		}

		created, err := insertCustomers(ctx, tx, db, result)
		if err != nil {
			return err
		}

		return insertAddresses(ctx, tx, db, created, result)
	})
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(ctx, db)
	if err != nil {
		return nil, err
	}
	result.Summary = summary

	return result, nil
}

func clearData(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM addresses"); err != nil {
		return fmt.Errorf("failed to clear addresses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM customers"); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}
	log.Info().Msg("Cleared existing customers and addresses")
	return nil
}

// insertCustomers returns the ids of the customers created in this run keyed by first name
func insertCustomers(ctx context.Context, tx *sql.Tx, db *database.DB, result *Result) (map[string]int, error) {
	query := db.Rebind(`
		INSERT INTO customers (first_name, last_name, phone_number, email)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (phone_number) DO NOTHING
		RETURNING id
	`)

	created := make(map[string]int, len(SampleCustomers))
	for _, c := range SampleCustomers {
		var id int
		err := tx.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.PhoneNumber, c.Email).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug().Str("phone_number", c.PhoneNumber).Msg("Customer already exists, skipping")
			result.CustomersSkipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert customer %s: %w", c.FullName(), err)
		}

		created[c.FirstName] = id
		result.CustomersInserted++
	}

	log.Info().
		Int("inserted", result.CustomersInserted).
		Int("skipped", result.CustomersSkipped).
		Msg("Seeded customers")
	return created, nil
}

func insertAddresses(ctx context.Context, tx *sql.Tx, db *database.DB, created map[string]int, result *Result) error {
	query := db.Rebind(`
		INSERT INTO addresses (customer_id, street, city, state, zip_code, address_type, is_primary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	for _, a := range sampleAddresses {
		customerID, ok := created[a.CustomerName]
		if !ok {
			continue
		}

		isPrimary := 0
		if a.IsPrimary {
			isPrimary = 1
		}

		_, err := tx.ExecContext(ctx, query, customerID, a.Street, a.City, a.State, a.ZipCode, a.AddressType, isPrimary)
		if err != nil {
			return fmt.Errorf("failed to insert address for %s: %w", a.CustomerName, err)
		}
		result.AddressesInserted++
	}

	log.Info().Int("inserted", result.AddressesInserted).Msg("Seeded addresses")
	return nil
}

// Summarize lists every customer with its number of addresses, ordered by first name
func Summarize(ctx context.Context, db *database.DB) ([]CustomerSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.first_name, c.last_name, c.phone_number, COUNT(a.id)
		FROM customers c
		LEFT JOIN addresses a ON c.id = a.customer_id
		GROUP BY c.id, c.first_name, c.last_name, c.phone_number
		ORDER BY c.first_name, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize customers: %w", err)
	}
	defer rows.Close()

	summary := []CustomerSummary{}
	for rows.Next() {
		var s CustomerSummary
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.PhoneNumber, &s.AddressCount); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}
