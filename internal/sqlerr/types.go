package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code is a coarse classification of PostgreSQL error conditions that
// the application cares about.
type Code int

const (
	// Other covers every condition without a dedicated mapping.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// Severity mirrors the PostgreSQL error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is the normalized database error. It keeps the driver metadata
// (table, column, constraint) needed to build user-facing messages and
// wraps the original driver error for Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error to errors.Is/As.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}

// MapCode maps a SQLSTATE code onto the application's Code enum.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the driver severity string onto the Severity enum.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}
