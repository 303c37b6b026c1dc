package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/lib/storage"
	"github.com/studykit/studykit/internal/server"
)

// UploadService pushes files to S3 and issues presigned download
// links. This is the generic object-storage surface; study documents
// go through DocumentService instead.
type UploadService struct {
	server *server.Server
	s3     *storage.S3
}

func NewUploadService(s *server.Server) (*UploadService, error) {
	s3, err := storage.NewS3(context.Background(), s.Config)
	if err != nil {
		return nil, err
	}

	return &UploadService{
		server: s,
		s3:     s3,
	}, nil
}

// UploadResult describes a stored object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload stores a file under the user's prefix in the configured
// bucket.
func (svc *UploadService) Upload(ctx context.Context, userID int64, filename, contentType string, content []byte) (*UploadResult, error) {
	maxBytes := svc.server.Config.Storage.MaxFileSizeMB * 1024 * 1024
	if int64(len(content)) > maxBytes {
		return nil, errs.NewBadRequestError("File too large", true, nil, nil, nil)
	}
	if len(content) == 0 {
		return nil, errs.NewBadRequestError("Uploaded file is empty", true, nil, nil, nil)
	}

	key, url, err := svc.s3.Upload(ctx, userID, filename, contentType, bytes.NewReader(content))
	if err != nil {
		svc.server.Logger.Error().Err(err).Str("filename", filename).Msg("S3 upload failed")
		return nil, errs.NewInternalServerError()
	}

	return &UploadResult{Key: key, URL: url}, nil
}

// PresignDownload returns a time-limited download URL for an object
// under the user's prefix. Keys outside the prefix are rejected so
// users cannot mint links for each other's files.
func (svc *UploadService) PresignDownload(ctx context.Context, userID int64, key string) (string, time.Duration, error) {
	if !strings.HasPrefix(key, fmt.Sprintf("documents/%d/", userID)) {
		return "", 0, errs.NewForbiddenError("You do not have access to this object", true)
	}

	ttl := time.Duration(svc.server.Config.Storage.PresignTTLMin) * time.Minute

	url, err := svc.s3.PresignGet(ctx, key, ttl)
	if err != nil {
		svc.server.Logger.Error().Err(err).Str("key", key).Msg("Presign failed")
		return "", 0, errs.NewInternalServerError()
	}

	return url, ttl, nil
}
