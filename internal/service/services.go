package service

import (
	"github.com/studykit/studykit/internal/lib/job"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
)

// Services is the container for all business services, built once at
// startup from the application container and the repositories.
type Services struct {
	Auth         *AuthService
	Document     *DocumentService
	Question     *QuestionService
	StudySession *StudySessionService
	Upload       *UploadService
	Job          *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	documentService, err := NewDocumentService(s, repos)
	if err != nil {
		return nil, err
	}

	uploadService, err := NewUploadService(s)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:         NewAuthService(s, repos),
		Document:     documentService,
		Question:     NewQuestionService(s, repos),
		StudySession: NewStudySessionService(s, repos),
		Upload:       uploadService,
		Job:          s.Job,
	}, nil
}
