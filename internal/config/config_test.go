package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv seeds the minimal environment Load needs to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"STUDYKIT_PRIMARY.ENV": "test",

		"STUDYKIT_SERVER.PORT":                 "8080",
		"STUDYKIT_SERVER.READ_TIMEOUT":         "10",
		"STUDYKIT_SERVER.WRITE_TIMEOUT":        "10",
		"STUDYKIT_SERVER.IDLE_TIMEOUT":         "60",
		"STUDYKIT_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",

		"STUDYKIT_DATABASE.HOST":               "localhost",
		"STUDYKIT_DATABASE.PORT":               "5432",
		"STUDYKIT_DATABASE.USER":               "studykit",
		"STUDYKIT_DATABASE.PASSWORD":           "studykit",
		"STUDYKIT_DATABASE.NAME":               "studykit_test",
		"STUDYKIT_DATABASE.SSL_MODE":           "disable",
		"STUDYKIT_DATABASE.MAX_OPEN_CONNS":     "10",
		"STUDYKIT_DATABASE.MAX_IDLE_CONNS":     "5",
		"STUDYKIT_DATABASE.CONN_MAX_LIFETIME":  "300",
		"STUDYKIT_DATABASE.CONN_MAX_IDLE_TIME": "60",

		"STUDYKIT_REDIS.ADDRESS": "localhost:6379",

		"STUDYKIT_AUTH.SECRET_KEY":      "0123456789abcdef0123456789abcdef",
		"STUDYKIT_AUTH.TOKEN_TTL_HOURS": "24",

		"STUDYKIT_STORAGE.UPLOAD_DIR":         t.TempDir(),
		"STUDYKIT_STORAGE.MAX_FILE_SIZE_MB":   "10",
		"STUDYKIT_STORAGE.ALLOWED_FILE_TYPES": "pdf",
		"STUDYKIT_STORAGE.S3_BUCKET":          "studykit-test",
		"STUDYKIT_STORAGE.S3_REGION":          "us-east-1",
		"STUDYKIT_STORAGE.PRESIGN_TTL_MIN":    "15",

		"STUDYKIT_AI.MODEL":              "claude-sonnet-4-20250514",
		"STUDYKIT_AI.MAX_TOKENS":         "4096",
		"STUDYKIT_AI.CONTENT_CHAR_LIMIT": "50000",
		"STUDYKIT_AI.TIMEOUT_SECONDS":    "60",
	}

	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, int64(10), cfg.Storage.MaxFileSizeMB)
	assert.Equal(t, 4096, cfg.AI.MaxTokens)
}

func TestLoad_ObservabilityDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "studykit", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoad_ShortSecretKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STUDYKIT_AUTH.SECRET_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestObservabilityConfig_SlowQueryThresholdDefault(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.Equal(t, 100*time.Millisecond, cfg.Logging.SlowQueryThreshold)
}
