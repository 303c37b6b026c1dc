package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskDocumentExtract re-runs text extraction for a stored document.
	TaskDocumentExtract = "document:extract"

	// TaskDocumentPurgeFile removes a document's file from local storage
	// after the row has been soft-deleted.
	TaskDocumentPurgeFile = "document:purge_file"
)

// DocumentExtractPayload identifies the document to extract.
type DocumentExtractPayload struct {
	DocumentID int64 `json:"document_id"`
}

// DocumentPurgeFilePayload carries the storage path to remove.
type DocumentPurgeFilePayload struct {
	FilePath string `json:"file_path"`
}

// NewDocumentExtractTask builds an extraction task. Extraction is
// retried more aggressively than email because the underlying file is
// already on disk and failures are usually transient.
func NewDocumentExtractTask(documentID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(DocumentExtractPayload{DocumentID: documentID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDocumentExtract,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueDefault),
		asynq.Timeout(2*time.Minute),
	), nil
}

// NewDocumentPurgeFileTask builds a file purge task on the low queue.
func NewDocumentPurgeFileTask(filePath string) (*asynq.Task, error) {
	payload, err := json.Marshal(DocumentPurgeFilePayload{FilePath: filePath})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDocumentPurgeFile,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	), nil
}
