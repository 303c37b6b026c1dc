package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/studykit/studykit/internal/server"
)

// Middlewares groups all middleware components used by the HTTP
// server so routing code has a single wired bundle to pull from.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, and the global
	// error handler.
	Global *GlobalMiddlewares

	// Auth enforces JWT bearer authentication and attaches the user
	// identity to the request.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip, optional user and trace
	// metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware plus helpers to attach
	// custom attributes and notice errors on transactions.
	Tracing *TracingMiddleware

	// RateLimit throttles the expensive endpoints (AI generation,
	// uploads) and records rate limit telemetry.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the
// application container. When New Relic is not configured the tracing
// middleware degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
