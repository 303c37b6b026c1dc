package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/validation"
)

type notePayload struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}

func (p *notePayload) Validate() error {
	return validation.Struct(p)
}

func postContext(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	e := echo.New()

	fn := Handle(Handler{}, func(c echo.Context, req *notePayload) (*notePayload, error) {
		return req, nil
	}, http.StatusOK, func() *notePayload { return &notePayload{} })

	c1, rec1 := postContext(e, "/notes", `{"title":"first","body":"only for the first caller"}`)
	require.NoError(t, fn(c1))

	var first notePayload
	require.NoError(t, json.Unmarshal(rec1.Body.Bytes(), &first))
	assert.Equal(t, "only for the first caller", first.Body)

	// A later request that omits a field must not observe the previous
	// request's value for it.
	c2, rec2 := postContext(e, "/notes", `{"title":"second"}`)
	require.NoError(t, fn(c2))

	var second notePayload
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &second))
	assert.Equal(t, "second", second.Title)
	assert.Empty(t, second.Body)
}

func TestHandle_MalformedBody(t *testing.T) {
	e := echo.New()

	fn := Handle(Handler{}, func(c echo.Context, req *notePayload) (*notePayload, error) {
		return req, nil
	}, http.StatusOK, func() *notePayload { return &notePayload{} })

	c, _ := postContext(e, "/notes", `{"title":`)
	err := fn(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request payload", httpErr.Message)
}

func generateContext(e *echo.Echo, documentID, query string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := postContext(e, "/questions/generate/"+documentID+query, "")
	c.SetPath("/questions/generate/:documentID")
	c.SetParamNames("documentID")
	c.SetParamValues(documentID)
	return c, rec
}

func TestHandle_GenerateBindsQueryParamsOnPost(t *testing.T) {
	e := echo.New()
	documentID := "3f2c9a64-1d7b-4e0a-9f31-8c5d2b7a6e10"

	fn := Handle(Handler{}, func(c echo.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsRequest, error) {
		return req, nil
	}, http.StatusCreated, func() *GenerateQuestionsRequest { return &GenerateQuestionsRequest{} })

	c, rec := generateContext(e, documentID, "?num_questions=12&question_type=true_false&difficulty=hard")
	require.NoError(t, fn(c))

	var got GenerateQuestionsRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, documentID, got.DocumentID)
	assert.Equal(t, 12, got.NumQuestions)
	assert.Equal(t, "true_false", got.QuestionType)
	assert.Equal(t, "hard", got.Difficulty)
}

func TestHandle_GenerateRejectsBadQueryParams(t *testing.T) {
	e := echo.New()
	documentID := "3f2c9a64-1d7b-4e0a-9f31-8c5d2b7a6e10"

	fn := Handle(Handler{}, func(c echo.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsRequest, error) {
		return req, nil
	}, http.StatusCreated, func() *GenerateQuestionsRequest { return &GenerateQuestionsRequest{} })

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"too many questions", "?num_questions=50", "numquestions"},
		{"unknown difficulty", "?difficulty=impossible", "difficulty"},
		{"unknown question type", "?question_type=essay", "questiontype"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := generateContext(e, documentID, tt.query)
			err := fn(c)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.NotEmpty(t, httpErr.Errors)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
		})
	}
}

func TestHandleNoContent(t *testing.T) {
	e := echo.New()

	fn := HandleNoContent(Handler{}, func(c echo.Context, req *notePayload) error {
		return nil
	}, http.StatusNoContent, func() *notePayload { return &notePayload{} })

	c, rec := postContext(e, "/notes", `{"title":"gone"}`)
	require.NoError(t, fn(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
