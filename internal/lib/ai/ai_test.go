package ai

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGenerationPrompt(t *testing.T) {
	params := Params{NumQuestions: 5, QuestionType: TypeMultipleChoice, Difficulty: DifficultyMedium}
	prompt := buildGenerationPrompt("Photosynthesis converts light into chemical energy.", params, 0)

	assert.Contains(t, prompt, "Generate 5 multiple_choice questions at medium difficulty")
	assert.Contains(t, prompt, difficultyInstructions[DifficultyMedium])
	assert.Contains(t, prompt, typeInstructions[TypeMultipleChoice])
	assert.Contains(t, prompt, "Photosynthesis converts light into chemical energy.")
}

func TestBuildGenerationPrompt_TruncatesContent(t *testing.T) {
	content := strings.Repeat("a", 100)
	params := Params{NumQuestions: 3, QuestionType: TypeShortAnswer, Difficulty: DifficultyEasy}

	prompt := buildGenerationPrompt(content, params, 40)

	assert.Contains(t, prompt, strings.Repeat("a", 40))
	assert.NotContains(t, prompt, strings.Repeat("a", 41))
}

func TestBuildExplanationPrompt(t *testing.T) {
	prompt := buildExplanationPrompt("What is the powerhouse of the cell?", "The mitochondria")

	assert.Contains(t, prompt, "Question: What is the powerhouse of the cell?")
	assert.Contains(t, prompt, "Correct answer: The mitochondria")
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}

func TestCacheKey_Stable(t *testing.T) {
	params := Params{NumQuestions: 5, QuestionType: TypeMultipleChoice, Difficulty: DifficultyHard}

	assert.Equal(t, cacheKey("same content", params), cacheKey("same content", params))
	assert.NotEqual(t, cacheKey("same content", params), cacheKey("other content", params))

	other := params
	other.NumQuestions = 10
	assert.NotEqual(t, cacheKey("same content", params), cacheKey("same content", other))
}

func TestParseQuestions_Envelope(t *testing.T) {
	raw := `{"questions":[{"question_text":"Is water wet?","options":["True","False"],"correct_answer":"True","explanation":"By definition."}]}`

	questions, err := parseQuestions(raw, Params{QuestionType: TypeTrueFalse})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Is water wet?", questions[0].QuestionText)
	assert.Equal(t, "True", questions[0].CorrectAnswer)
}

func TestParseQuestions_BareArray(t *testing.T) {
	raw := `[{"question_text":"Define osmosis.","correct_answer":"Diffusion of water across a membrane."}]`

	questions, err := parseQuestions(raw, Params{QuestionType: TypeShortAnswer})
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestParseQuestions_CodeFence(t *testing.T) {
	raw := "```json\n" + `{"questions":[{"question_text":"Q","correct_answer":"A"}]}` + "\n```"

	questions, err := parseQuestions(raw, Params{QuestionType: TypeShortAnswer})
	require.NoError(t, err)
	require.Len(t, questions, 1)
}

func TestParseQuestions_WrongOptionCount(t *testing.T) {
	raw := `{"questions":[{"question_text":"Q","options":["a","b"],"correct_answer":"a"}]}`

	_, err := parseQuestions(raw, Params{QuestionType: TypeMultipleChoice})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 4")
}

func TestParseQuestions_MissingFields(t *testing.T) {
	_, err := parseQuestions(`{"questions":[{"options":["a","b","c","d"],"correct_answer":"a"}]}`, Params{QuestionType: TypeMultipleChoice})
	assert.Error(t, err)

	_, err = parseQuestions(`{"questions":[{"question_text":"Q"}]}`, Params{QuestionType: TypeShortAnswer})
	assert.Error(t, err)
}

func TestParseQuestions_NotJSON(t *testing.T) {
	_, err := parseQuestions("I could not generate questions for this material.", Params{QuestionType: TypeShortAnswer})
	assert.Error(t, err)
}

func TestParseQuestions_Empty(t *testing.T) {
	_, err := parseQuestions(`{"questions":[]}`, Params{QuestionType: TypeShortAnswer})
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(errors.New("invalid request: model not found")))
	assert.True(t, isTransient(errors.New("context deadline exceeded")))
	assert.True(t, isTransient(errors.New("rate limit hit, retry later")))
	assert.True(t, isTransient(errors.New("api is overloaded")))
}
