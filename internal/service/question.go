package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/lib/ai"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
)

// QuestionService generates and manages study questions.
type QuestionService struct {
	server    *server.Server
	questions *repository.QuestionRepository
	documents *repository.DocumentRepository
	generator *ai.Client
}

func NewQuestionService(s *server.Server, repos *repository.Repositories) *QuestionService {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	cache := ai.NewCache(
		s.Redis,
		time.Duration(s.Config.AI.CacheTTLMin)*time.Minute,
		s.Logger,
	)

	return &QuestionService{
		server:    s,
		questions: repos.Question,
		documents: repos.Document,
		generator: ai.NewClient(s.Config, cache, s.Logger, nrApp),
	}
}

// Generate produces a batch of questions from a document's extracted
// text and persists them. The document must belong to the user and
// must have text available.
func (svc *QuestionService) Generate(ctx context.Context, userID int64, docUUID uuid.UUID, params ai.Params) ([]*repository.Question, error) {
	doc, err := svc.documents.GetForUser(ctx, docUUID, userID)
	if err != nil {
		return nil, err
	}

	if doc.Content == nil || *doc.Content == "" {
		return nil, errs.NewBadRequestError(
			"Document text is not available yet, try again shortly",
			true, nil, nil, nil,
		)
	}

	generated, err := svc.generator.GenerateQuestions(ctx, *doc.Content, params)
	if err != nil {
		svc.server.Logger.Error().Err(err).Int64("document_id", doc.ID).Msg("Question generation failed")
		return nil, errs.NewInternalServerError()
	}

	batch := make([]repository.CreateQuestionParams, 0, len(generated))
	for _, q := range generated {
		var options *string
		if len(q.Options) > 0 {
			encoded, err := json.Marshal(q.Options)
			if err != nil {
				return nil, err
			}
			s := string(encoded)
			options = &s
		}

		var explanation *string
		if q.Explanation != "" {
			e := q.Explanation
			explanation = &e
		}

		batch = append(batch, repository.CreateQuestionParams{
			QuestionText:  q.QuestionText,
			QuestionType:  params.QuestionType,
			CorrectAnswer: q.CorrectAnswer,
			Options:       options,
			Explanation:   explanation,
			Difficulty:    params.Difficulty,
			DocumentID:    doc.ID,
			UserID:        userID,
		})
	}

	return svc.questions.CreateBatch(ctx, batch)
}

// ListForDocument returns a document's questions, optionally filtered
// by type and difficulty.
func (svc *QuestionService) ListForDocument(ctx context.Context, userID int64, docUUID uuid.UUID, questionType, difficulty string) ([]*repository.Question, error) {
	doc, err := svc.documents.GetForUser(ctx, docUUID, userID)
	if err != nil {
		return nil, err
	}

	return svc.questions.ListForDocument(ctx, doc.ID, userID, questionType, difficulty)
}

// Get fetches one question owned by the user.
func (svc *QuestionService) Get(ctx context.Context, userID int64, questionUUID uuid.UUID) (*repository.Question, error) {
	return svc.questions.GetForUser(ctx, questionUUID, userID)
}

// Delete soft-deletes a question.
func (svc *QuestionService) Delete(ctx context.Context, userID int64, questionUUID uuid.UUID) error {
	return svc.questions.SoftDelete(ctx, questionUUID, userID)
}

// RegenerateExplanation asks the model for a fresh explanation of an
// existing question and stores it.
func (svc *QuestionService) RegenerateExplanation(ctx context.Context, userID int64, questionUUID uuid.UUID) (*repository.Question, error) {
	question, err := svc.questions.GetForUser(ctx, questionUUID, userID)
	if err != nil {
		return nil, err
	}

	explanation, err := svc.generator.GenerateExplanation(ctx, question.QuestionText, question.CorrectAnswer)
	if err != nil {
		svc.server.Logger.Error().Err(err).Int64("question_id", question.ID).Msg("Explanation generation failed")
		return nil, errs.NewInternalServerError()
	}

	return svc.questions.SetExplanation(ctx, questionUUID, userID, explanation)
}
