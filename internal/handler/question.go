package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/lib/ai"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
	"github.com/studykit/studykit/internal/validation"
)

// QuestionHandler serves AI question generation and question CRUD.
type QuestionHandler struct {
	Handler
	questions *service.QuestionService
}

func NewQuestionHandler(s *server.Server, services *service.Services) *QuestionHandler {
	return &QuestionHandler{
		Handler:   NewHandler(s),
		questions: services.Question,
	}
}

type GenerateQuestionsRequest struct {
	DocumentID   string `param:"documentID" validate:"required,uuid"`
	NumQuestions int    `query:"num_questions" validate:"omitempty,min=1,max=20"`
	QuestionType string `query:"question_type" validate:"omitempty,oneof=multiple_choice true_false short_answer"`
	Difficulty   string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

func (r *GenerateQuestionsRequest) Validate() error {
	return validation.Struct(r)
}

// QuestionsResponse wraps a list of questions.
type QuestionsResponse struct {
	Questions []*repository.Question `json:"questions"`
	Count     int                    `json:"count"`
}

func (h *QuestionHandler) Generate(c echo.Context, req *GenerateQuestionsRequest) (*QuestionsResponse, error) {
	params := ai.Params{
		NumQuestions: req.NumQuestions,
		QuestionType: req.QuestionType,
		Difficulty:   req.Difficulty,
	}
	if params.NumQuestions == 0 {
		params.NumQuestions = 5
	}
	if params.QuestionType == "" {
		params.QuestionType = ai.TypeMultipleChoice
	}
	if params.Difficulty == "" {
		params.Difficulty = ai.DifficultyMedium
	}

	questions, err := h.questions.Generate(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.DocumentID), params)
	if err != nil {
		return nil, err
	}

	return &QuestionsResponse{Questions: questions, Count: len(questions)}, nil
}

type ListQuestionsRequest struct {
	DocumentID   string `param:"documentID" validate:"required,uuid"`
	QuestionType string `query:"question_type" validate:"omitempty,oneof=multiple_choice true_false short_answer"`
	Difficulty   string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

func (r *ListQuestionsRequest) Validate() error {
	return validation.Struct(r)
}

func (h *QuestionHandler) ListForDocument(c echo.Context, req *ListQuestionsRequest) (*QuestionsResponse, error) {
	questions, err := h.questions.ListForDocument(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.DocumentID), req.QuestionType, req.Difficulty)
	if err != nil {
		return nil, err
	}

	return &QuestionsResponse{Questions: questions, Count: len(questions)}, nil
}

type QuestionIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *QuestionIDRequest) Validate() error {
	return validation.Struct(r)
}

func (h *QuestionHandler) Get(c echo.Context, req *QuestionIDRequest) (*repository.Question, error) {
	return h.questions.Get(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

func (h *QuestionHandler) Delete(c echo.Context, req *QuestionIDRequest) error {
	return h.questions.Delete(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

func (h *QuestionHandler) RegenerateExplanation(c echo.Context, req *QuestionIDRequest) (*repository.Question, error) {
	return h.questions.RegenerateExplanation(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

func (h *QuestionHandler) GenerateRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Generate, http.StatusCreated, func() *GenerateQuestionsRequest { return &GenerateQuestionsRequest{} })
}

func (h *QuestionHandler) ListForDocumentRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.ListForDocument, http.StatusOK, func() *ListQuestionsRequest { return &ListQuestionsRequest{} })
}

func (h *QuestionHandler) GetRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Get, http.StatusOK, func() *QuestionIDRequest { return &QuestionIDRequest{} })
}

func (h *QuestionHandler) DeleteRoute() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, func() *QuestionIDRequest { return &QuestionIDRequest{} })
}

func (h *QuestionHandler) RegenerateExplanationRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.RegenerateExplanation, http.StatusOK, func() *QuestionIDRequest { return &QuestionIDRequest{} })
}
