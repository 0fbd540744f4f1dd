package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Change describes what a migration did when it ran
type Change struct {
	Version int
	Name    string
	Action  string
}

// MigrationStatus reports whether a migration has been recorded as applied
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt string
}

// TableInfo describes a table as currently found in the store
type TableInfo struct {
	Name    string
	Exists  bool
	Columns []string
}

// ManagedTables lists the tables owned by the schema manager
var ManagedTables = []string{"customers", "addresses", "customer_events"}

type migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *sql.Tx, d Dialect) (string, error)
}

// Each migration inspects the live schema before changing it, so running one
// against a store that predates schema_migrations is safe.
var migrations = []migration{
	{Version: 1, Name: "customers_table", Apply: ensureCustomersTable},
	{Version: 2, Name: "customers_email_column", Apply: ensureEmailColumn},
	{Version: 3, Name: "addresses_table", Apply: ensureAddressesTable},
	{Version: 4, Name: "addresses_customer_index", Apply: ensureAddressIndex},
	{Version: 5, Name: "customer_events_table", Apply: ensureEventsTable},
	{Version: 6, Name: "addresses_unchecked_owner", Apply: dropAddressOwnerConstraint},
}

// Migrate brings the schema up to date and returns the changes it applied
func Migrate(ctx context.Context, db *DB) ([]Change, error) {
	log.Info().Msg("Running database migrations")

	if err := createMigrationTable(ctx, db); err != nil {
		return nil, err
	}

	var currentVersion int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	changes := []Change{}
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		var action string
		err := db.Transaction(ctx, func(tx *sql.Tx) error {
			var err error
			action, err = m.Apply(ctx, tx, db.dialect)
			if err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}

			_, err = tx.ExecContext(ctx,
				db.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
				m.Version, m.Name,
			)
			if err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return changes, err
		}

		log.Info().Int("version", m.Version).Str("name", m.Name).Str("action", action).Msg("Applied migration")
		changes = append(changes, Change{Version: m.Version, Name: m.Name, Action: action})
	}

	log.Info().Int("applied", len(changes)).Msg("Database migrations complete")
	return changes, nil
}

// Status lists every known migration and whether it has been applied
func Status(ctx context.Context, db *DB) ([]MigrationStatus, error) {
	if err := createMigrationTable(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]string)
	for rows.Next() {
		var version int
		var appliedAt sql.NullString
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt.String
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read migration rows: %w", err)
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		appliedAt, ok := applied[m.Version]
		statuses = append(statuses, MigrationStatus{
			Version:   m.Version,
			Name:      m.Name,
			Applied:   ok,
			AppliedAt: appliedAt,
		})
	}
	return statuses, nil
}

// DescribeTables reports the columns of every managed table
func DescribeTables(ctx context.Context, db *DB) ([]TableInfo, error) {
	infos := make([]TableInfo, 0, len(ManagedTables))
	for _, table := range ManagedTables {
		exists, err := tableExists(ctx, db, db.dialect, table)
		if err != nil {
			return nil, err
		}
		info := TableInfo{Name: table, Exists: exists}
		if exists {
			if info.Columns, err = tableColumns(ctx, db, db.dialect, table); err != nil {
				return nil, err
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func createMigrationTable(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func ensureCustomersTable(ctx context.Context, tx *sql.Tx, d Dialect) (string, error) {
	exists, err := tableExists(ctx, tx, d, "customers")
	if err != nil {
		return "", err
	}
	if exists {
		return "customers table exists", nil
	}

	if _, err := tx.ExecContext(ctx, customersDDL(d)); err != nil {
		return "", fmt.Errorf("failed to create customers table: %w", err)
	}
	return "created customers table", nil
}

func ensureEmailColumn(ctx context.Context, tx *sql.Tx, d Dialect) (string, error) {
	columns, err := tableColumns(ctx, tx, d, "customers")
	if err != nil {
		return "", err
	}
	if hasColumn(columns, "email") {
		return "email column exists", nil
	}

	if _, err := tx.ExecContext(ctx, "ALTER TABLE customers ADD COLUMN email TEXT"); err != nil {
		return "", fmt.Errorf("failed to add email column: %w", err)
	}
	return "added email column to customers", nil
}

func ensureAddressesTable(ctx context.Context, tx *sql.Tx, d Dialect) (string, error) {
	exists, err := tableExists(ctx, tx, d, "addresses")
	if err != nil {
		return "", err
	}
	if !exists {
		if _, err := tx.ExecContext(ctx, addressesDDL(d, "addresses")); err != nil {
			return "", fmt.Errorf("failed to create addresses table: %w", err)
		}
		return "created addresses table", nil
	}

	columns, err := tableColumns(ctx, tx, d, "addresses")
	if err != nil {
		return "", err
	}

	current := hasColumn(columns, "street") && hasColumn(columns, "zip_code")
	legacy := hasColumn(columns, "address_details") || hasColumn(columns, "pin_code")

	switch {
	case current:
		return "addresses table has current schema", nil
	case legacy:
		copied, err := convertLegacyAddresses(ctx, tx, d, columns)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("converted legacy addresses table (%d rows copied)", copied), nil
	default:
		if _, err := tx.ExecContext(ctx, "DROP TABLE addresses"); err != nil {
			return "", fmt.Errorf("failed to drop addresses table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, addressesDDL(d, "addresses")); err != nil {
			return "", fmt.Errorf("failed to recreate addresses table: %w", err)
		}
		return "recreated addresses table with unknown schema", nil
	}
}

// convertLegacyAddresses rebuilds addresses from the address_details/pin_code
// layout, taking each new column from the first legacy column that exists.
func convertLegacyAddresses(ctx context.Context, tx *sql.Tx, d Dialect, columns []string) (int64, error) {
	if _, err := tx.ExecContext(ctx, addressesDDL(d, "addresses_new")); err != nil {
		return 0, fmt.Errorf("failed to create addresses_new table: %w", err)
	}

	pick := func(fallback string, candidates ...string) string {
		for _, c := range candidates {
			if hasColumn(columns, c) {
				return c
			}
		}
		return fallback
	}

	copySQL := fmt.Sprintf(`
		INSERT INTO addresses_new (customer_id, street, city, state, zip_code, address_type, is_primary)
		SELECT %s, %s, %s, %s, %s, %s, %s FROM addresses`,
		pick("NULL", "customer_id"),
		pick("''", "street", "address_details"),
		pick("''", "city"),
		pick("''", "state"),
		pick("''", "zip_code", "pin_code"),
		pick("'home'", "address_type"),
		pick("0", "is_primary"),
	)

	result, err := tx.ExecContext(ctx, copySQL)
	if err != nil {
		return 0, fmt.Errorf("failed to copy legacy addresses: %w", err)
	}
	copied, _ := result.RowsAffected()

	if _, err := tx.ExecContext(ctx, "DROP TABLE addresses"); err != nil {
		return 0, fmt.Errorf("failed to drop legacy addresses table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "ALTER TABLE addresses_new RENAME TO addresses"); err != nil {
		return 0, fmt.Errorf("failed to rename addresses_new: %w", err)
	}

	return copied, nil
}

func ensureAddressIndex(ctx context.Context, tx *sql.Tx, _ Dialect) (string, error) {
	_, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses (customer_id)")
	if err != nil {
		return "", fmt.Errorf("failed to create addresses index: %w", err)
	}
	return "ensured idx_addresses_customer_id", nil
}

// dropAddressOwnerConstraint removes the customer reference that earlier
// postgres schemas enforced on addresses.
func dropAddressOwnerConstraint(ctx context.Context, tx *sql.Tx, d Dialect) (string, error) {
	if !d.EnforcesForeignKeys() {
		return "addresses owner reference is not enforced", nil
	}
	if _, err := tx.ExecContext(ctx, "ALTER TABLE addresses DROP CONSTRAINT IF EXISTS addresses_customer_id_fkey"); err != nil {
		return "", fmt.Errorf("failed to drop addresses owner constraint: %w", err)
	}
	return "dropped addresses_customer_id_fkey", nil
}

func ensureEventsTable(ctx context.Context, tx *sql.Tx, _ Dialect) (string, error) {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS customer_events (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			customer_id INTEGER NOT NULL,
			address_id INTEGER,
			occurred_at TIMESTAMP NOT NULL,
			payload TEXT,
			received_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to create customer_events table: %w", err)
	}
	return "ensured customer_events table", nil
}

func customersDDL(d Dialect) string {
	return fmt.Sprintf(`
		CREATE TABLE customers (
			id %s,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone_number TEXT NOT NULL UNIQUE,
			email TEXT
		)`, d.AutoIncrementKey())
}

// addressesDDL creates an addresses table. Addresses may name a customer that
// does not exist, so the owner reference is only declared where the store
// leaves it unchecked.
func addressesDDL(d Dialect, table string) string {
	owner := ""
	if !d.EnforcesForeignKeys() {
		owner = ",\n\t\t\tFOREIGN KEY (customer_id) REFERENCES customers (id)"
	}
	return fmt.Sprintf(`
		CREATE TABLE %s (
			id %s,
			customer_id INTEGER,
			street TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip_code TEXT NOT NULL,
			address_type TEXT DEFAULT 'home',
			is_primary INTEGER DEFAULT 0%s
		)`, table, d.AutoIncrementKey(), owner)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func tableExists(ctx context.Context, q queryer, d Dialect, table string) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, d.TableExistsQuery(), table).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return count > 0, nil
}

func tableColumns(ctx context.Context, q queryer, d Dialect, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, d.ColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
