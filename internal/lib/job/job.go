// Package job provides Redis-backed background processing with Asynq.
//
// The HTTP layer enqueues tasks through JobService.Client; a worker
// server embedded in the same process pulls them back out and runs the
// registered handlers. A cron scheduler enqueues the nightly
// maintenance task.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/config"
)

// Queue names, highest priority first.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// JobService owns the Asynq client used to enqueue tasks, the worker
// server that executes them, and the cron scheduler for recurring
// maintenance.
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	cron   *cron.Cron
	logger *zerolog.Logger

	handlers *taskHandlers
}

// NewJobService builds the producer and consumer halves against the
// configured Redis. Worker shares are split 6/3/1 across the critical,
// default and low queues.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers task handlers, starts the worker server, and kicks
// off the maintenance schedule. InitHandlers must have been called.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskDocumentExtract, j.handleDocumentExtractTask)
	mux.HandleFunc(TaskDocumentPurgeFile, j.handleDocumentPurgeFileTask)
	mux.HandleFunc(TaskMaintenancePurge, j.handleMaintenancePurgeTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	// Nightly at 03:00: enqueue the purge task so retention runs
	// through the same queue and retry machinery as everything else.
	_, err := j.cron.AddFunc("0 3 * * *", func() {
		task, err := NewMaintenancePurgeTask()
		if err != nil {
			j.logger.Error().Err(err).Msg("Failed to build maintenance purge task")
			return
		}
		if _, err := j.Client.Enqueue(task); err != nil {
			j.logger.Error().Err(err).Msg("Failed to enqueue maintenance purge task")
		}
	})
	if err != nil {
		return err
	}
	j.cron.Start()

	return nil
}

// Stop gracefully stops the scheduler, the worker server, and the
// enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.cron.Stop()
	j.server.Shutdown()
	j.Client.Close()
}
