package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/config"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.UploadDir = filepath.Join(t.TempDir(), "uploads")

	store, err := NewLocal(cfg)
	require.NoError(t, err)
	return store
}

func TestLocal_SaveAndRead(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("chapter one"), "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	content, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("chapter one"), content)

	size, err := store.Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("chapter one")), size)
}

func TestLocal_SaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)

	a, err := store.Save([]byte("same"), "docx")
	require.NoError(t, err)
	b, err := store.Save([]byte("same"), "docx")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocal_Delete(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save([]byte("ephemeral"), "pptx")
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	_, err = store.Read(path)
	assert.Error(t, err)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(path))
}
