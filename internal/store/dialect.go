package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavor of the configured database.
type Dialect int

const (
	// SQLite is the default embedded backend (modernc.org/sqlite).
	SQLite Dialect = iota
	// Postgres is PostgreSQL through the pgx stdlib driver.
	Postgres
)

// ParseDialect maps a configuration driver name onto a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return SQLite, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// SerialPrimaryKey is the column definition for an auto-assigned 64-bit key.
func (d Dialect) SerialPrimaryKey() string {
	if d == Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Timestamp is the column type used for created_at style columns.
func (d Dialect) Timestamp() string {
	if d == Postgres {
		return "TIMESTAMP"
	}
	return "DATETIME"
}

// Rebind rewrites '?' placeholders into the dialect's native form. Queries in
// this module are written with '?' and only PostgreSQL needs rewriting.
// Placeholders inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
