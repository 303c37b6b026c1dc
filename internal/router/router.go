// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/handler"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/server"
)

// Setup builds the Echo instance with the full middleware chain and
// all route groups registered.
//
// Middleware order matters: the request ID must exist before the
// context enhancer builds the request logger, and the New Relic
// transaction must exist before tracing attributes are added.
func Setup(s *server.Server, middlewares *middleware.Middlewares, handlers *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	e.Use(middlewares.Global.Recover())
	e.Use(middlewares.Global.Secure())
	e.Use(middlewares.Global.CORS())
	e.Use(middlewares.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(middlewares.ContextEnhancer.EnhanceContext())
	e.Use(middlewares.Tracing.EnhanceTracing())
	e.Use(middlewares.Global.RequestLogger())

	registerSystemRoutes(e, handlers)
	registerAPIRoutes(e, s, middlewares, handlers)

	return e
}
