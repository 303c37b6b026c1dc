package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/config"
)

const explanationMaxTokens = 300

// Client talks to the Anthropic Messages API. Credentials come from
// the ambient ANTHROPIC_API_KEY environment variable.
type Client struct {
	api   anthropic.Client
	cfg   config.AIConfig
	cache *Cache
	log   *zerolog.Logger
	nrApp *newrelic.Application
}

func NewClient(cfg *config.Config, cache *Cache, log *zerolog.Logger, nrApp *newrelic.Application) *Client {
	return &Client{
		api:   anthropic.NewClient(),
		cfg:   cfg.AI,
		cache: cache,
		log:   log,
		nrApp: nrApp,
	}
}

// GenerateQuestions produces a batch of study questions for the given
// document text. Results are served from cache when an identical
// request was answered recently.
func (c *Client) GenerateQuestions(ctx context.Context, content string, params Params) ([]GeneratedQuestion, error) {
	if questions, ok := c.cache.Get(ctx, content, params); ok {
		c.log.Debug().Int("count", len(questions)).Msg("question generation served from cache")
		c.recordEvent("AIGeneration", map[string]any{"cached": true, "count": len(questions)})
		return questions, nil
	}

	prompt := buildGenerationPrompt(content, params, c.cfg.ContentCharLimit)

	start := time.Now()
	raw, err := c.complete(ctx, generationSystemPrompt, prompt, int64(c.cfg.MaxTokens))
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(raw, params)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int("count", len(questions)).
		Int("prompt_tokens_est", EstimateTokens(prompt)).
		Dur("duration", time.Since(start)).
		Msg("questions generated")
	c.recordEvent("AIGeneration", map[string]any{
		"cached":      false,
		"count":       len(questions),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	c.cache.Set(ctx, content, params, questions)
	return questions, nil
}

// GenerateExplanation produces a short explanation for why an answer
// is correct. Used to refresh explanations on existing questions.
func (c *Client) GenerateExplanation(ctx context.Context, questionText, correctAnswer string) (string, error) {
	prompt := buildExplanationPrompt(questionText, correctAnswer)

	raw, err := c.complete(ctx, "", prompt, explanationMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// complete performs one Messages API call with retries. Transient
// failures (rate limits, overload, timeouts) back off exponentially
// starting at one second.
func (c *Client) complete(ctx context.Context, system, prompt string, maxTokens int64) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Second << (attempt - 1)
			c.log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("retrying model call")

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
		text, err := c.call(callCtx, system, prompt, maxTokens)
		cancel()

		if err == nil {
			return text, nil
		}
		if !isTransient(err) {
			return "", err
		}
		lastErr = err
	}

	return "", errors.Wrapf(lastErr, "model call failed after %d retries", c.cfg.MaxRetries)
}

func (c *Client) call(ctx context.Context, system, prompt string, maxTokens int64) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "anthropic messages")
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("no text block in model response")
}

func (c *Client) recordEvent(name string, attrs map[string]any) {
	if c.nrApp != nil {
		c.nrApp.RecordCustomEvent(name, attrs)
	}
}

// isTransient reports whether an API failure is worth retrying.
func isTransient(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 529:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"rate limit", "overloaded", "timeout", "deadline exceeded", "connection"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// parseQuestions decodes and validates a model response. The model is
// instructed to answer with {"questions": [...]}, but a bare array is
// accepted too.
func parseQuestions(raw string, params Params) ([]GeneratedQuestion, error) {
	raw = stripCodeFence(raw)

	var envelope struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil || len(envelope.Questions) == 0 {
		var bare []GeneratedQuestion
		if err2 := json.Unmarshal([]byte(raw), &bare); err2 != nil {
			return nil, errors.New("model response is not valid question JSON")
		}
		envelope.Questions = bare
	}

	if len(envelope.Questions) == 0 {
		return nil, errors.New("model response contains no questions")
	}

	for i, q := range envelope.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, errors.Errorf("question %d is missing question_text", i+1)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, errors.Errorf("question %d is missing correct_answer", i+1)
		}

		switch params.QuestionType {
		case TypeMultipleChoice:
			if len(q.Options) != 4 {
				return nil, errors.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
			}
		case TypeTrueFalse:
			if len(q.Options) != 2 {
				return nil, errors.Errorf("question %d has %d options, want 2", i+1, len(q.Options))
			}
		}
	}

	return envelope.Questions, nil
}

// stripCodeFence removes a surrounding markdown code fence that models
// occasionally wrap JSON output in.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
