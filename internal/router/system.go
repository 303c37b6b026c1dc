package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/handler"
)

// registerSystemRoutes wires the public operational endpoints: status,
// API docs, and static assets.
func registerSystemRoutes(e *echo.Echo, handlers *handler.Handlers) {
	e.GET("/status", handlers.Health.CheckHealth)
	e.GET("/docs", handlers.OpenAPI.ServeOpenAPIUI)
	e.Static("/static", "static")
}
