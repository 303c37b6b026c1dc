// Package logger configures the application's logging, monitoring,
// and observability.
//
// It uses zerolog for structured logging and integrates with New Relic
// to instrument the codebase, forwarding logs, metrics, and traces.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
// When New Relic is not configured the service exists but holds nil,
// and every consumer degrades to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application instance, or nil
// when the agent is disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call when the agent is
// disabled.
func (s *LoggerService) Shutdown() {
	if s != nil && s.nrApp != nil {
		s.nrApp.Shutdown(0)
	}
}

// New builds the application logger and, when configured, the New Relic
// application.
//
// Output selection:
//   - console format: human-friendly writer (local development)
//   - json format: raw JSON to stdout; wrapped in the New Relic
//     zerologWriter when the agent is enabled so logs are forwarded
//     with trace context attached.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}
	if obs.NewRelicEnabled() {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		}
		if obs.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
		}

		nrApp, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic application: %w", err)
		}
		service.nrApp = nrApp
	}

	var out io.Writer = os.Stdout
	switch {
	case obs.Logging.Format == "console":
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	case service.nrApp != nil:
		w := zerologWriter.New(os.Stdout, service.nrApp)
		out = &w
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, service, nil
}

// WithTraceContext returns a copy of logger carrying the transaction's
// trace and span identifiers so log lines correlate with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger handed to the pgx tracelog adapter.
// SQL logging is noisy, so it only exists for local development; the
// component field keeps it filterable.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the application log level onto pgx tracelog
// verbosity.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
