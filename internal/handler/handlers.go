package handler

import (
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one
// wired object.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Auth         *AuthHandler
	Document     *DocumentHandler
	Question     *QuestionHandler
	StudySession *StudySessionHandler
	Upload       *UploadHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Auth:         NewAuthHandler(s, services),
		Document:     NewDocumentHandler(s, services),
		Question:     NewQuestionHandler(s, services),
		StudySession: NewStudySessionHandler(s, services),
		Upload:       NewUploadHandler(s, services),
	}
}
