package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/lib/extract"
	"github.com/studykit/studykit/internal/lib/job"
	"github.com/studykit/studykit/internal/lib/storage"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
)

// DocumentService owns the document upload pipeline and document CRUD.
type DocumentService struct {
	server    *server.Server
	documents *repository.DocumentRepository
	files     *storage.Local
}

func NewDocumentService(s *server.Server, repos *repository.Repositories) (*DocumentService, error) {
	files, err := storage.NewLocal(s.Config)
	if err != nil {
		return nil, err
	}

	return &DocumentService{
		server:    s,
		documents: repos.Document,
		files:     files,
	}, nil
}

// Upload validates, stores, and extracts an uploaded document.
//
// Extraction runs inline so most documents are immediately usable for
// question generation. When inline extraction fails the document is
// still created and a background task retries the extraction.
func (svc *DocumentService) Upload(ctx context.Context, userID int64, title, filename string, content []byte) (*repository.Document, error) {
	fileType, err := extract.ValidateFileType(filename)
	if err != nil {
		return nil, errs.NewBadRequestError(err.Error(), true, nil, nil, nil)
	}

	maxBytes := svc.server.Config.Storage.MaxFileSizeMB * 1024 * 1024
	if int64(len(content)) > maxBytes {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("File too large: maximum size is %dMB", svc.server.Config.Storage.MaxFileSizeMB),
			true, nil, nil, nil,
		)
	}
	if len(content) == 0 {
		return nil, errs.NewBadRequestError("Uploaded file is empty", true, nil, nil, nil)
	}

	filePath, err := svc.files.Save(content, fileType)
	if err != nil {
		return nil, err
	}

	var extracted *string
	text, err := extract.Text(content, fileType)
	if err != nil {
		svc.server.Logger.Warn().
			Err(err).
			Str("filename", filename).
			Msg("Inline extraction failed, deferring to background task")
	} else {
		extracted = &text
	}

	doc, err := svc.documents.Create(ctx, repository.CreateDocumentParams{
		Title:    title,
		Filename: filename,
		FilePath: filePath,
		FileType: fileType,
		FileSize: int64(len(content)),
		Content:  extracted,
		UserID:   userID,
	})
	if err != nil {
		// Creation failed; the stored file would orphan.
		if delErr := svc.files.Delete(filePath); delErr != nil {
			svc.server.Logger.Warn().Err(delErr).Str("file_path", filePath).Msg("Failed to clean up file after create failure")
		}
		return nil, err
	}

	if extracted == nil {
		task, err := job.NewDocumentExtractTask(doc.ID)
		if err == nil {
			_, err = svc.server.Job.Client.Enqueue(task)
		}
		if err != nil {
			svc.server.Logger.Error().Err(err).Int64("document_id", doc.ID).Msg("Failed to enqueue extraction task")
		}
	}

	return doc, nil
}

// List returns one page of the user's documents plus the total count.
func (svc *DocumentService) List(ctx context.Context, userID int64, page, perPage int) ([]*repository.Document, int64, error) {
	offset := (page - 1) * perPage

	docs, err := svc.documents.ListForUser(ctx, userID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := svc.documents.CountForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// Get fetches one document owned by the user, including its extracted
// text.
func (svc *DocumentService) Get(ctx context.Context, userID int64, docUUID uuid.UUID) (*repository.Document, error) {
	return svc.documents.GetForUser(ctx, docUUID, userID)
}

// UpdateTitle renames a document.
func (svc *DocumentService) UpdateTitle(ctx context.Context, userID int64, docUUID uuid.UUID, title string) (*repository.Document, error) {
	return svc.documents.UpdateTitle(ctx, docUUID, userID, title)
}

// Delete soft-deletes a document together with its questions and
// sessions, then queues removal of the stored file.
func (svc *DocumentService) Delete(ctx context.Context, userID int64, docUUID uuid.UUID) error {
	doc, err := svc.documents.SoftDelete(ctx, docUUID, userID)
	if err != nil {
		return err
	}

	task, err := job.NewDocumentPurgeFileTask(doc.FilePath)
	if err == nil {
		_, err = svc.server.Job.Client.Enqueue(task)
	}
	if err != nil {
		svc.server.Logger.Error().Err(err).Str("file_path", doc.FilePath).Msg("Failed to enqueue file purge task")
	}

	return nil
}
