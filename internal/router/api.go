package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/handler"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/server"
)

// registerAPIRoutes wires the /api/v1 surface. Everything except the
// auth endpoints requires a valid bearer token. The AI and upload
// routes are additionally rate limited, since they back onto paid
// quotas.
func registerAPIRoutes(e *echo.Echo, s *server.Server, middlewares *middleware.Middlewares, handlers *handler.Handlers) {
	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", handlers.Auth.RegisterRoute())
	auth.POST("/login", handlers.Auth.LoginRoute())

	documents := api.Group("/documents", middlewares.Auth.RequireAuth)
	documents.POST("/upload", handlers.Document.Upload,
		middlewares.Global.BodyLimit(),
		middlewares.RateLimit.Limit("document_upload", 1, 5),
	)
	documents.GET("", handlers.Document.ListRoute())
	documents.GET("/:id", handlers.Document.GetRoute())
	documents.PUT("/:id", handlers.Document.UpdateRoute())
	documents.DELETE("/:id", handlers.Document.DeleteRoute())

	questions := api.Group("/questions", middlewares.Auth.RequireAuth)
	questions.POST("/generate/:documentID", handlers.Question.GenerateRoute(),
		middlewares.RateLimit.Limit("question_generate", 0.5, 3),
	)
	questions.GET("/document/:documentID", handlers.Question.ListForDocumentRoute())
	questions.GET("/:id", handlers.Question.GetRoute())
	questions.DELETE("/:id", handlers.Question.DeleteRoute())
	questions.POST("/regenerate-explanation/:id", handlers.Question.RegenerateExplanationRoute(),
		middlewares.RateLimit.Limit("regenerate_explanation", 0.5, 3),
	)

	sessions := api.Group("/study-sessions", middlewares.Auth.RequireAuth)
	sessions.POST("", handlers.StudySession.CreateRoute())
	sessions.GET("", handlers.StudySession.ListRoute())
	sessions.GET("/document/:documentID", handlers.StudySession.ListForDocumentRoute())
	sessions.GET("/:id", handlers.StudySession.GetRoute())
	sessions.PUT("/:id", handlers.StudySession.UpdateRoute())
	sessions.DELETE("/:id", handlers.StudySession.DeleteRoute())

	uploads := api.Group("/upload", middlewares.Auth.RequireAuth)
	uploads.POST("", handlers.Upload.Upload,
		middlewares.Global.BodyLimit(),
		middlewares.RateLimit.Limit("s3_upload", 1, 5),
	)
	uploads.GET("/*", handlers.Upload.Presign)
}
