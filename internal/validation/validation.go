// Package validation contains the logic for validating request data.
//
// It uses the validator library to enforce rules (required fields,
// value ranges, enums) defined in struct tags and extracts validation
// failures into a format the client can understand.
package validation
