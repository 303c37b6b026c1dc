// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the PostgreSQL driver and
// converts them into user-friendly application errors (e.g. a foreign
// key violation becomes a Bad Request with a readable message).
package sqlerr
