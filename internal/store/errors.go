package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/HerbHall/newsroom/internal/apperr"
)

// Code is a driver-independent classification of a storage failure.
type Code int

const (
	CodeUnknown Code = iota
	// CodeInvalidText is a value that cannot be converted to the column type,
	// e.g. a non-numeric string compared against an integer key.
	CodeInvalidText
	// CodeNotNull is a required column omitted on insert.
	CodeNotNull
	// CodeForeignKey is a reference to a row that does not exist.
	CodeForeignKey
	// CodeUnique is a duplicate key.
	CodeUnique
	// CodeUndefinedColumn is a reference to an unknown column or identifier.
	CodeUndefinedColumn
	// CodeSyntax is malformed SQL, usually from a bad ORDER BY fragment.
	CodeSyntax
)

// PostgreSQL SQLSTATE values.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgUndefinedColumn           = "42703"
	pgSyntaxError               = "42601"
)

// Classify inspects err for a known driver error and returns its Code.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return CodeInvalidText
		case pgNotNullViolation:
			return CodeNotNull
		case pgForeignKeyViolation:
			return CodeForeignKey
		case pgUniqueViolation:
			return CodeUnique
		case pgUndefinedColumn:
			return CodeUndefinedColumn
		case pgSyntaxError:
			return CodeSyntax
		}
		return CodeUnknown
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_MISMATCH:
			return CodeInvalidText
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return CodeNotNull
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return CodeForeignKey
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return CodeUnique
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended result codes disabled on this connection.
			return classifySQLiteMessage(liteErr.Error())
		case sqlite3.SQLITE_ERROR:
			// SQLite reports both through the generic result code.
			return classifySQLiteMessage(liteErr.Error())
		}
	}

	return CodeUnknown
}

// Translate converts a recognized storage failure into an *apperr.Error that
// wraps the driver error. ok is false for anything Classify does not know.
func Translate(err error) (*apperr.Error, bool) {
	switch Classify(err) {
	case CodeInvalidText:
		return apperr.Validation(apperr.MsgInvalidID).Wrap(err), true
	case CodeNotNull:
		return apperr.Validation(apperr.MsgMissingColumns).Wrap(err), true
	case CodeForeignKey:
		return apperr.Referential(apperr.MsgNotFound, err), true
	case CodeUnique:
		return apperr.Validation(apperr.MsgAlreadyExists).Wrap(err), true
	case CodeUndefinedColumn, CodeSyntax:
		return apperr.Validation(apperr.MsgInvalidQuery).Wrap(err), true
	default:
		return nil, false
	}
}

func classifySQLiteMessage(msg string) Code {
	switch {
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return CodeNotNull
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return CodeForeignKey
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return CodeUnique
	case strings.Contains(msg, "no such column"):
		return CodeUndefinedColumn
	case strings.Contains(msg, "syntax error"):
		return CodeSyntax
	default:
		return CodeUnknown
	}
}
