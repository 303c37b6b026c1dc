package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/errs"
)

type createPayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=50"`
}

func (p *createPayload) Validate() error {
	return Struct(p)
}

func newTestContext(t *testing.T, body string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_Valid(t *testing.T) {
	c := newTestContext(t, `{"email":"jo@example.com","name":"Jo"}`)

	var payload createPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, "jo@example.com", payload.Email)
}

type searchPayload struct {
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Sort  string `query:"sort" validate:"omitempty,oneof=asc desc"`
}

func (p *searchPayload) Validate() error {
	return Struct(p)
}

// Query params must bind on POST too, not just on the methods echo's
// default binder covers.
func TestBindAndValidate_QueryParamsOnPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/?limit=25&sort=desc", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var payload searchPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, 25, payload.Limit)
	assert.Equal(t, "desc", payload.Sort)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newTestContext(t, `{"email":`)

	var payload createPayload
	err := BindAndValidate(c, &payload)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request payload", httpErr.Message)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	c := newTestContext(t, `{"email":"not-an-email","name":"x"}`)

	var payload createPayload
	err := BindAndValidate(c, &payload)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 2)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 2 characters", byField["name"])
}

func TestBindAndValidate_MissingRequired(t *testing.T) {
	c := newTestContext(t, `{}`)

	var payload createPayload
	err := BindAndValidate(c, &payload)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0b7aa639-6550-4227-a7f3-0a2b0a9b2d8f"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("0b7aa639-6550-4227-a7f3-0a2b0a9b2d8"))
}
