package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/studykit/studykit/internal/config"
	"github.com/studykit/studykit/internal/lib/email"
	"github.com/studykit/studykit/internal/lib/extract"
	"github.com/studykit/studykit/internal/lib/storage"
	"github.com/studykit/studykit/internal/repository"
)

// taskHandlers holds the dependencies job handlers execute against.
// Populated once by InitHandlers before the worker server starts.
type taskHandlers struct {
	email     *email.Client
	documents *repository.DocumentRepository
	files     *storage.Local
}

// InitHandlers wires handler dependencies. Must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, pool *pgxpool.Pool) error {
	files, err := storage.NewLocal(cfg)
	if err != nil {
		return err
	}

	j.handlers = &taskHandlers{
		email:     email.NewClient(cfg, logger),
		documents: repository.NewDocumentRepository(pool),
		files:     files,
	}
	return nil
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshalling welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.handlers.email.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

// handleDocumentExtractTask re-runs text extraction for a document
// whose inline extraction failed at upload time.
func (j *JobService) handleDocumentExtractTask(ctx context.Context, t *asynq.Task) error {
	var p DocumentExtractPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshalling document extract payload: %w", err)
	}

	log := j.logger.With().Int64("document_id", p.DocumentID).Logger()
	log.Info().Msg("Processing document extraction task")

	doc, err := j.handlers.documents.GetByID(ctx, p.DocumentID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load document for extraction")
		return err
	}

	content, err := j.handlers.files.Read(doc.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read document file")
		return err
	}

	text, err := extract.Text(content, doc.FileType)
	if err != nil {
		log.Error().Err(err).Msg("Failed to extract document text")
		return err
	}

	if err := j.handlers.documents.SetContent(ctx, doc.ID, text); err != nil {
		log.Error().Err(err).Msg("Failed to store extracted text")
		return err
	}

	log.Info().Int("chars", len(text)).Msg("Document text extracted")
	return nil
}

// handleDocumentPurgeFileTask removes a soft-deleted document's file
// from local storage.
func (j *JobService) handleDocumentPurgeFileTask(ctx context.Context, t *asynq.Task) error {
	var p DocumentPurgeFilePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshalling purge file payload: %w", err)
	}

	if err := j.handlers.files.Delete(p.FilePath); err != nil {
		j.logger.Error().Str("file_path", p.FilePath).Err(err).Msg("Failed to purge document file")
		return err
	}

	j.logger.Info().Str("file_path", p.FilePath).Msg("Document file purged")
	return nil
}

// handleMaintenancePurgeTask hard-deletes rows that have been
// soft-deleted longer than the retention window, removing their files
// first so nothing orphans on disk.
func (j *JobService) handleMaintenancePurgeTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-purgeRetention)

	paths, err := j.handlers.documents.ListPurgeableFiles(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to list purgeable files")
		return err
	}
	for _, path := range paths {
		if err := j.handlers.files.Delete(path); err != nil {
			j.logger.Warn().Str("file_path", path).Err(err).Msg("Failed to remove file during purge")
		}
	}

	purged, err := j.handlers.documents.PurgeDeleted(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to purge deleted documents")
		return err
	}

	j.logger.Info().Int64("documents", purged).Msg("Maintenance purge complete")
	return nil
}
