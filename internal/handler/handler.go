// Package handler is the HTTP entry point after the router.
//
// Handlers parse and validate requests with the validation package,
// call the service layer, and write responses through a shared typed
// pipeline that also owns per-request logging and tracing attributes.
package handler
