package ai

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache memoizes generation results in Redis so identical requests
// against the same document text skip the model call. A nil Redis
// client disables caching entirely.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log *zerolog.Logger) *Cache {
	return &Cache{redis: client, ttl: ttl, log: log}
}

// cacheKey derives a stable key from the document text and generation
// parameters. The content is hashed so keys stay short regardless of
// document size.
func cacheKey(content string, params Params) string {
	sum := md5.Sum([]byte(content))
	return fmt.Sprintf("ai:questions:%x:%d:%s:%s", sum, params.NumQuestions, params.QuestionType, params.Difficulty)
}

// Get returns the cached questions for a request, or ok=false on a
// miss. Cache failures are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, content string, params Params) ([]GeneratedQuestion, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	payload, err := c.redis.Get(ctx, cacheKey(content, params)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("question cache read failed")
		}
		return nil, false
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal(payload, &questions); err != nil {
		c.log.Warn().Err(err).Msg("question cache entry is corrupt")
		return nil, false
	}
	return questions, true
}

// Set stores a generation result. Failures are logged and ignored.
func (c *Cache) Set(ctx context.Context, content string, params Params, questions []GeneratedQuestion) {
	if c == nil || c.redis == nil {
		return
	}

	payload, err := json.Marshal(questions)
	if err != nil {
		c.log.Warn().Err(err).Msg("question cache marshal failed")
		return
	}

	if err := c.redis.Set(ctx, cacheKey(content, params), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("question cache write failed")
	}
}
