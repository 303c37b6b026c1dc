package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
	"github.com/studykit/studykit/internal/validation"
)

// DocumentHandler serves document upload and CRUD.
type DocumentHandler struct {
	Handler
	documents *service.DocumentService
}

func NewDocumentHandler(s *server.Server, services *service.Services) *DocumentHandler {
	return &DocumentHandler{
		Handler:   NewHandler(s),
		documents: services.Document,
	}
}

const maxTitleLen = 200

// clampTitle caps a title at maxTitleLen characters. It cuts on rune
// boundaries so a truncated title is still valid UTF-8.
func clampTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:maxTitleLen])
}

// Upload handles the multipart document upload. It bypasses the typed
// pipeline because multipart forms don't bind into a payload struct.
func (h *DocumentHandler) Upload(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "document_upload").
		Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errs.NewBadRequestError("Missing file in multipart form", true, nil, nil, nil)
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}
	title = clampTitle(title)

	file, err := fileHeader.Open()
	if err != nil {
		return errs.NewBadRequestError("Could not read uploaded file", true, nil, nil, nil)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errs.NewBadRequestError("Could not read uploaded file", true, nil, nil, nil)
	}

	doc, err := h.documents.Upload(c.Request().Context(), middleware.GetUserID(c), title, fileHeader.Filename, content)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("document upload failed")
		return err
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Int64("size", doc.FileSize).
		Msg("document uploaded")

	return c.JSON(http.StatusCreated, doc)
}

type ListDocumentsRequest struct {
	Page    int `query:"page" validate:"omitempty,min=1"`
	PerPage int `query:"per_page" validate:"omitempty,min=1,max=100"`
}

func (r *ListDocumentsRequest) Validate() error {
	return validation.Struct(r)
}

// ListDocumentsResponse wraps one page of documents.
type ListDocumentsResponse struct {
	Documents []*repository.Document `json:"documents"`
	Page      int                    `json:"page"`
	PerPage   int                    `json:"per_page"`
	Total     int64                  `json:"total"`
}

func (h *DocumentHandler) List(c echo.Context, req *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	page, perPage := req.Page, req.PerPage
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 20
	}

	docs, total, err := h.documents.List(c.Request().Context(), middleware.GetUserID(c), page, perPage)
	if err != nil {
		return nil, err
	}

	return &ListDocumentsResponse{
		Documents: docs,
		Page:      page,
		PerPage:   perPage,
		Total:     total,
	}, nil
}

type GetDocumentRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetDocumentRequest) Validate() error {
	return validation.Struct(r)
}

func (h *DocumentHandler) Get(c echo.Context, req *GetDocumentRequest) (*repository.Document, error) {
	return h.documents.Get(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

type UpdateDocumentRequest struct {
	ID    string `param:"id" validate:"required,uuid"`
	Title string `json:"title" validate:"required,min=1,max=200"`
}

func (r *UpdateDocumentRequest) Validate() error {
	return validation.Struct(r)
}

func (h *DocumentHandler) Update(c echo.Context, req *UpdateDocumentRequest) (*repository.Document, error) {
	return h.documents.UpdateTitle(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID), req.Title)
}

type DeleteDocumentRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteDocumentRequest) Validate() error {
	return validation.Struct(r)
}

func (h *DocumentHandler) Delete(c echo.Context, req *DeleteDocumentRequest) error {
	return h.documents.Delete(c.Request().Context(), middleware.GetUserID(c), uuid.MustParse(req.ID))
}

func (h *DocumentHandler) ListRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.List, http.StatusOK, func() *ListDocumentsRequest { return &ListDocumentsRequest{} })
}

func (h *DocumentHandler) GetRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Get, http.StatusOK, func() *GetDocumentRequest { return &GetDocumentRequest{} })
}

func (h *DocumentHandler) UpdateRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Update, http.StatusOK, func() *UpdateDocumentRequest { return &UpdateDocumentRequest{} })
}

func (h *DocumentHandler) DeleteRoute() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, func() *DeleteDocumentRequest { return &DeleteDocumentRequest{} })
}
