package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("jo@example.com", "Jo")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var payload WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "jo@example.com", payload.To)
	assert.Equal(t, "Jo", payload.FirstName)
}

func TestNewDocumentExtractTask(t *testing.T) {
	task, err := NewDocumentExtractTask(117)
	require.NoError(t, err)
	assert.Equal(t, TaskDocumentExtract, task.Type())

	var payload DocumentExtractPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, int64(117), payload.DocumentID)
}

func TestNewDocumentPurgeFileTask(t *testing.T) {
	task, err := NewDocumentPurgeFileTask("uploads/3f2a.pdf")
	require.NoError(t, err)
	assert.Equal(t, TaskDocumentPurgeFile, task.Type())

	var payload DocumentPurgeFilePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "uploads/3f2a.pdf", payload.FilePath)
}

func TestNewMaintenancePurgeTask(t *testing.T) {
	task, err := NewMaintenancePurgeTask()
	require.NoError(t, err)
	assert.Equal(t, TaskMaintenancePurge, task.Type())
	assert.Empty(t, task.Payload())
}
