package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/studykit/studykit/internal/config"
)

// S3 uploads files to an S3 bucket and issues presigned download
// links. Objects are keyed by owner so per-user listings stay cheap:
// documents/{userID}/{uuid}.{ext}.
type S3 struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

// NewS3 builds a client from the ambient AWS credential chain and the
// configured region.
func NewS3(ctx context.Context, cfg *config.Config) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.S3Region))
	if err != nil {
		return nil, errors.Wrap(err, "loading aws config")
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Storage.S3Bucket,
		region:  cfg.Storage.S3Region,
	}, nil
}

// Upload stores content under a fresh object key owned by userID and
// returns the key together with the object's public URL.
func (s *S3) Upload(ctx context.Context, userID int64, filename, contentType string, body io.Reader) (string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	key := fmt.Sprintf("documents/%d/%s.%s", userID, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", errors.Wrapf(err, "uploading object %s", key)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return key, url, nil
}

// PresignGet returns a time-limited download URL for an object key.
func (s *S3) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", errors.Wrapf(err, "presigning object %s", key)
	}
	return req.URL, nil
}
