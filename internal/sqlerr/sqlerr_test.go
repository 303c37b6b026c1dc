package sqlerr

import (
	"net/http"
	"testing"

	"github.com/studykit/studykit/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityPanic, MapSeverity("PANIC"))
	assert.Equal(t, SeverityUnknown, MapSeverity("NOTICE"))
}

func TestConvertPgError(t *testing.T) {
	src := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	converted := ConvertPgError(src)

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, "users", converted.TableName)
	assert.ErrorIs(t, converted, src)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "questions",
		ColumnName: "document_id",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "QUESTION_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Document does not exist", httpErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "documents",
		ColumnName: "title",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "DOCUMENT_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleError_AnnotatedNoRows(t *testing.T) {
	err := HandleError(errors.Wrap(pgx.ErrNoRows, "table:documents:"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Document not found", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_BareNoRows(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassesThroughHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownError(t *testing.T) {
	err := HandleError(errors.New("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, UniqueViolation, ErrCode(converted))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}
