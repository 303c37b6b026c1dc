package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/errs"
)

func TestPresignDownload_RejectsForeignKeys(t *testing.T) {
	svc := &UploadService{}

	tests := []string{
		"documents/99/file.pdf",
		"documents/420/file.pdf",
		"other/42/file.pdf",
		"documents/42x/file.pdf",
		"",
	}

	for _, key := range tests {
		_, _, err := svc.PresignDownload(context.Background(), 42, key)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr, key)
		assert.Equal(t, http.StatusForbidden, httpErr.Status, key)
	}
}
