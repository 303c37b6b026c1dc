package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/logger"
	"github.com/studykit/studykit/internal/server"
)

const (
	// UserIDKey and UserEmailKey are the canonical Echo context keys
	// set by the auth middleware.
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"

	// LoggerKey stores the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path, ip, New Relic trace ids when a transaction exists, and
// the user id when auth ran earlier in the chain. The logger is stored
// in both Echo context and the Go request context so repositories and
// jobs reached via context.Context can log with correlation fields.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID, ok := c.Get(UserIDKey).(int64); ok {
				contextLogger = contextLogger.With().Int64("user_id", userID).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID reads the authenticated user's internal id from Echo
// context. Returns 0 when the request is unauthenticated.
func GetUserID(c echo.Context) int64 {
	if userID, ok := c.Get(UserIDKey).(int64); ok {
		return userID
	}
	return 0
}

// GetUserEmail reads the authenticated user's email from Echo context.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// GetLogger retrieves the request-scoped logger from Echo context. If
// EnhanceContext did not run it returns a no-op logger rather than
// nil.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	nop := zerolog.Nop()
	return &nop
}
