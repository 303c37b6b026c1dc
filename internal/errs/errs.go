// Package errs defines custom error types and utilities.
//
// Its purpose is to give API clients meaningful, actionable, and
// consistent error payloads: a machine-readable code, a human message,
// optional field-level validation errors, and optional client actions.
package errs
