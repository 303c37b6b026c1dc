package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
)

// StudySessionService records and reports study sessions.
type StudySessionService struct {
	server    *server.Server
	sessions  *repository.StudySessionRepository
	documents *repository.DocumentRepository
}

func NewStudySessionService(s *server.Server, repos *repository.Repositories) *StudySessionService {
	return &StudySessionService{
		server:    s,
		sessions:  repos.StudySession,
		documents: repos.Document,
	}
}

// CreateSessionInput is the validated input for Create.
type CreateSessionInput struct {
	SessionName      string
	DocumentUUID     uuid.UUID
	TotalQuestions   int
	CorrectAnswers   int
	TimeSpentMinutes *int
	Answers          *string
}

// Create records a session against one of the user's documents. The
// score is computed server-side from the answer counts.
func (svc *StudySessionService) Create(ctx context.Context, userID int64, input CreateSessionInput) (*repository.StudySession, error) {
	if input.CorrectAnswers > input.TotalQuestions {
		return nil, errs.NewBadRequestError(
			"Correct answers cannot exceed total questions",
			true, nil, nil, nil,
		)
	}

	doc, err := svc.documents.GetForUser(ctx, input.DocumentUUID, userID)
	if err != nil {
		return nil, err
	}

	score := ComputeScore(input.CorrectAnswers, input.TotalQuestions)

	return svc.sessions.Create(ctx, repository.CreateStudySessionParams{
		SessionName:      input.SessionName,
		TotalQuestions:   input.TotalQuestions,
		CorrectAnswers:   input.CorrectAnswers,
		ScorePercentage:  &score,
		TimeSpentMinutes: input.TimeSpentMinutes,
		Answers:          input.Answers,
		DocumentID:       doc.ID,
		UserID:           userID,
	})
}

// List returns one page of the user's sessions.
func (svc *StudySessionService) List(ctx context.Context, userID int64, page, perPage int) ([]*repository.StudySession, error) {
	offset := (page - 1) * perPage
	return svc.sessions.ListForUser(ctx, userID, perPage, offset)
}

// ListForDocument returns the sessions recorded against one document.
func (svc *StudySessionService) ListForDocument(ctx context.Context, userID int64, docUUID uuid.UUID) ([]*repository.StudySession, error) {
	doc, err := svc.documents.GetForUser(ctx, docUUID, userID)
	if err != nil {
		return nil, err
	}

	return svc.sessions.ListForDocument(ctx, doc.ID, userID)
}

// Get fetches one session owned by the user.
func (svc *StudySessionService) Get(ctx context.Context, userID int64, sessionUUID uuid.UUID) (*repository.StudySession, error) {
	return svc.sessions.GetForUser(ctx, sessionUUID, userID)
}

// UpdateSessionInput is the validated input for Update. Nil fields are
// left unchanged.
type UpdateSessionInput struct {
	SessionName      *string
	CorrectAnswers   *int
	ScorePercentage  *float64
	TimeSpentMinutes *int
	Answers          *string
}

// Update applies a partial update to a session. When correct_answers
// is set without an explicit score, the score is recomputed from the
// session's question count.
func (svc *StudySessionService) Update(ctx context.Context, userID int64, sessionUUID uuid.UUID, input UpdateSessionInput) (*repository.StudySession, error) {
	session, err := svc.sessions.GetForUser(ctx, sessionUUID, userID)
	if err != nil {
		return nil, err
	}

	if input.CorrectAnswers != nil {
		if *input.CorrectAnswers > session.TotalQuestions {
			return nil, errs.NewBadRequestError(
				"Correct answers cannot exceed total questions",
				true, nil, nil, nil,
			)
		}

		if input.ScorePercentage == nil {
			score := ComputeScore(*input.CorrectAnswers, session.TotalQuestions)
			input.ScorePercentage = &score
		}
	}

	return svc.sessions.Update(ctx, sessionUUID, userID, repository.UpdateSessionParams{
		SessionName:      input.SessionName,
		CorrectAnswers:   input.CorrectAnswers,
		ScorePercentage:  input.ScorePercentage,
		TimeSpentMinutes: input.TimeSpentMinutes,
		Answers:          input.Answers,
	})
}

// Delete soft-deletes a session.
func (svc *StudySessionService) Delete(ctx context.Context, userID int64, sessionUUID uuid.UUID) error {
	return svc.sessions.SoftDelete(ctx, sessionUUID, userID)
}

// ComputeScore converts answer counts into a percentage. A session
// with no questions scores zero rather than dividing by zero.
func ComputeScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}
