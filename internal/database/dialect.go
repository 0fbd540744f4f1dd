package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the SQL differences between the supported stores
type Dialect interface {
	// Name returns the database/sql driver name
	Name() string
	// Rebind rewrites ? placeholders into the dialect's bind syntax
	Rebind(query string) string
	// Like returns the case-insensitive pattern match operator
	Like() string
	// AutoIncrementKey returns the column definition of a surrogate integer key
	AutoIncrementKey() string
	// IsUniqueViolation reports whether err is a unique constraint failure
	IsUniqueViolation(err error) bool
	// TableExistsQuery counts tables named by its single argument
	TableExistsQuery() string
	// ColumnsQuery lists the column names of the table named by its single argument
	ColumnsQuery() string
	// EnforcesForeignKeys reports whether REFERENCES clauses are checked on write
	EnforcesForeignKeys() bool
}

// SQLite is the dialect of modernc.org/sqlite
var SQLite Dialect = sqliteDialect{}

// Postgres is the dialect of lib/pq
var Postgres Dialect = postgresDialect{}

// DialectFor returns the dialect registered for a driver name
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return SQLite, nil
	case "postgres":
		return Postgres, nil
	default:
		return nil, errors.New("unsupported driver: " + driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }
func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) Like() string { return "LIKE" }
func (sqliteDialect) AutoIncrementKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

// foreign_keys is off unless the connection sets the pragma
func (sqliteDialect) EnforcesForeignKeys() bool { return false }

func (sqliteDialect) TableExistsQuery() string {
	return "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
}

func (sqliteDialect) ColumnsQuery() string {
	return "SELECT name FROM pragma_table_info(?) ORDER BY cid"
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		// primary result code only, when extended codes are off
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }
func (postgresDialect) Like() string { return "ILIKE" }
func (postgresDialect) AutoIncrementKey() string { return "SERIAL PRIMARY KEY" }
func (postgresDialect) EnforcesForeignKeys() bool { return true }

// Rebind turns each ? into $1, $2, ... in order of appearance
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) TableExistsQuery() string {
	return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1"
}

func (postgresDialect) ColumnsQuery() string {
	return "SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position"
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
