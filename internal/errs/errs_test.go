package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestNewBadRequestError(t *testing.T) {
	code := "DOCUMENT_ALREADY_EXISTS"
	fieldErrors := []FieldError{{Field: "email", Error: "is required"}}

	err := NewBadRequestError("bad input", true, &code, fieldErrors, nil)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "DOCUMENT_ALREADY_EXISTS", err.Code)
	assert.Equal(t, "bad input", err.Message)
	assert.True(t, err.Override)
	assert.Len(t, err.Errors, 1)
}

func TestNewBadRequestError_DefaultCode(t *testing.T) {
	err := NewBadRequestError("bad input", false, nil, nil, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Document not found", true, nil)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "Document not found", err.Message)
}

func TestNewTooManyRequestsError(t *testing.T) {
	err := NewTooManyRequestsError("slow down")

	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.Equal(t, "TOO_MANY_REQUESTS", err.Code)
}

func TestNewInternalServerError_HidesDetails(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Message)
	assert.False(t, err.Override)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewUnauthorizedError("Unauthorized", false)
	changed := base.WithMessage("token expired")

	require.NotNil(t, changed)
	assert.Equal(t, "token expired", changed.Message)
	assert.Equal(t, base.Status, changed.Status)
	// The original must not be mutated.
	assert.Equal(t, "Unauthorized", base.Message)
}

func TestHTTPError_Is(t *testing.T) {
	err := errors.Wrap(NewUnauthorizedError("nope", false), "handler")

	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}
