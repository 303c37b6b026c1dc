package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
	"github.com/studykit/studykit/internal/validation"
)

// StudySessionHandler serves study session CRUD.
type StudySessionHandler struct {
	Handler
	sessions *service.StudySessionService
}

func NewStudySessionHandler(s *server.Server, services *service.Services) *StudySessionHandler {
	return &StudySessionHandler{
		Handler:  NewHandler(s),
		sessions: services.StudySession,
	}
}

type CreateSessionRequest struct {
	SessionName      string  `json:"session_name" validate:"required,min=1,max=200"`
	DocumentID       string  `json:"document_id" validate:"required,uuid"`
	TotalQuestions   int     `json:"total_questions" validate:"required,min=1"`
	CorrectAnswers   int     `json:"correct_answers" validate:"omitempty,min=0"`
	TimeSpentMinutes *int    `json:"time_spent_minutes" validate:"omitempty,min=0"`
	Answers          *string `json:"answers"`
}

func (r *CreateSessionRequest) Validate() error {
	return validation.Struct(r)
}

func (h *StudySessionHandler) Create(c echo.Context, req *CreateSessionRequest) (*repository.StudySession, error) {
	return h.sessions.Create(c.Request().Context(), middleware.GetUserID(c), service.CreateSessionInput{
		SessionName:      req.SessionName,
		DocumentUUID:     uuid.MustParse(req.DocumentID),
		TotalQuestions:   req.TotalQuestions,
		CorrectAnswers:   req.CorrectAnswers,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Answers:          req.Answers,
	})
}

type ListSessionsRequest struct {
	Page    int `query:"page" validate:"omitempty,min=1"`
	PerPage int `query:"per_page" validate:"omitempty,min=1,max=100"`
}

func (r *ListSessionsRequest) Validate() error {
	return validation.Struct(r)
}

// SessionsResponse wraps a list of sessions.
type SessionsResponse struct {
	Sessions []*repository.StudySession `json:"sessions"`
	Count    int                        `json:"count"`
}

func (h *StudySessionHandler) List(c echo.Context, req *ListSessionsRequest) (*SessionsResponse, error) {
	page, perPage := req.Page, req.PerPage
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 20
	}

	sessions, err := h.sessions.List(c.Request().Context(), middleware.GetUserID(c), page, perPage)
	if err != nil {
		return nil, err
	}

	return &SessionsResponse{Sessions: sessions, Count: len(sessions)}, nil
}

type SessionsForDocumentRequest struct {
	DocumentID string `param:"documentID" validate:"required,uuid"`
}

func (r *SessionsForDocumentRequest) Validate() error {
	return validation.Struct(r)
}

func (h *StudySessionHandler) ListForDocument(c echo.Context, req *SessionsForDocumentRequest) (*SessionsResponse, error) {
	sessions, err := h.sessions.ListForDocument(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.DocumentID))
	if err != nil {
		return nil, err
	}

	return &SessionsResponse{Sessions: sessions, Count: len(sessions)}, nil
}

type SessionIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *SessionIDRequest) Validate() error {
	return validation.Struct(r)
}

func (h *StudySessionHandler) Get(c echo.Context, req *SessionIDRequest) (*repository.StudySession, error) {
	return h.sessions.Get(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

type UpdateSessionRequest struct {
	ID               string   `param:"id" validate:"required,uuid"`
	SessionName      *string  `json:"session_name" validate:"omitempty,min=1,max=200"`
	CorrectAnswers   *int     `json:"correct_answers" validate:"omitempty,min=0"`
	ScorePercentage  *float64 `json:"score_percentage" validate:"omitempty,min=0,max=100"`
	TimeSpentMinutes *int     `json:"time_spent_minutes" validate:"omitempty,min=0"`
	Answers          *string  `json:"answers"`
}

func (r *UpdateSessionRequest) Validate() error {
	return validation.Struct(r)
}

func (h *StudySessionHandler) Update(c echo.Context, req *UpdateSessionRequest) (*repository.StudySession, error) {
	return h.sessions.Update(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID), service.UpdateSessionInput{
		SessionName:      req.SessionName,
		CorrectAnswers:   req.CorrectAnswers,
		ScorePercentage:  req.ScorePercentage,
		TimeSpentMinutes: req.TimeSpentMinutes,
		Answers:          req.Answers,
	})
}

func (h *StudySessionHandler) Delete(c echo.Context, req *SessionIDRequest) error {
	return h.sessions.Delete(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

func (h *StudySessionHandler) CreateRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Create, http.StatusCreated, func() *CreateSessionRequest { return &CreateSessionRequest{} })
}

func (h *StudySessionHandler) ListRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.List, http.StatusOK, func() *ListSessionsRequest { return &ListSessionsRequest{} })
}

func (h *StudySessionHandler) ListForDocumentRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.ListForDocument, http.StatusOK, func() *SessionsForDocumentRequest { return &SessionsForDocumentRequest{} })
}

func (h *StudySessionHandler) GetRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Get, http.StatusOK, func() *SessionIDRequest { return &SessionIDRequest{} })
}

func (h *StudySessionHandler) UpdateRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Update, http.StatusOK, func() *UpdateSessionRequest { return &UpdateSessionRequest{} })
}

func (h *StudySessionHandler) DeleteRoute() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, func() *SessionIDRequest { return &SessionIDRequest{} })
}
