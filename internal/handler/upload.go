package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/middleware"
	"github.com/studykit/studykit/internal/server"
	"github.com/studykit/studykit/internal/service"
)

// UploadHandler serves the S3 object-storage endpoints.
type UploadHandler struct {
	Handler
	uploads *service.UploadService
}

func NewUploadHandler(s *server.Server, services *service.Services) *UploadHandler {
	return &UploadHandler{
		Handler: NewHandler(s),
		uploads: services.Upload,
	}
}

// Upload pushes a multipart file to S3. Like the document upload it
// bypasses the typed pipeline because of the multipart form.
func (h *UploadHandler) Upload(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "s3_upload").
		Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errs.NewBadRequestError("Missing file in multipart form", true, nil, nil, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errs.NewBadRequestError("Could not read uploaded file", true, nil, nil, nil)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errs.NewBadRequestError("Could not read uploaded file", true, nil, nil, nil)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.uploads.Upload(c.Request().Context(), middleware.GetUserID(c), fileHeader.Filename, contentType, content)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
		return err
	}

	logger.Info().Str("key", result.Key).Msg("file uploaded to object storage")

	return c.JSON(http.StatusCreated, result)
}

// PresignResponse carries a time-limited download URL.
type PresignResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}

// Presign issues a download URL for an object key. The route uses a
// wildcard because object keys contain slashes.
func (h *UploadHandler) Presign(c echo.Context) error {
	key := c.Param("*")
	if key == "" {
		return errs.NewBadRequestError("Missing object key", true, nil, nil, nil)
	}

	url, ttl, err := h.uploads.PresignDownload(c.Request().Context(), middleware.GetUserID(c), key)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &PresignResponse{URL: url, ExpiresIn: int64(ttl.Seconds())})
}
