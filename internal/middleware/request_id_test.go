package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/validation"
)

func runRequestID(t *testing.T, incomingID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incomingID != "" {
		req.Header.Set(RequestIDHeader, incomingID)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error { return nil })
	require.NoError(t, handler(c))
	return c, rec
}

func TestRequestID_Generates(t *testing.T) {
	c, rec := runRequestID(t, "")

	id := GetRequestID(c)
	assert.True(t, validation.IsValidUUID(id))
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	c, rec := runRequestID(t, "client-supplied-id")

	assert.Equal(t, "client-supplied-id", GetRequestID(c))
	assert.Equal(t, "client-supplied-id", rec.Header().Get(RequestIDHeader))
}

func TestGetRequestID_MissingMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
