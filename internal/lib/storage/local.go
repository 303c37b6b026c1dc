package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/studykit/studykit/internal/config"
)

// Local stores uploaded files on the local filesystem. Files are kept
// under a flat directory and named by a generated UUID so original
// filenames never touch the disk.
type Local struct {
	dir string
}

// NewLocal ensures the upload directory exists and returns a store
// rooted at it.
func NewLocal(cfg *config.Config) (*Local, error) {
	dir := cfg.Storage.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating upload directory %s", dir)
	}
	return &Local{dir: dir}, nil
}

// Save writes content to a new file and returns its storage path. The
// extension is carried over from the validated file type so the
// extraction worker can dispatch on it.
func (l *Local) Save(content []byte, fileType string) (string, error) {
	name := fmt.Sprintf("%s.%s", uuid.New().String(), fileType)
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing file %s", path)
	}
	return path, nil
}

// Read returns the content of a previously saved file.
func (l *Local) Read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading file %s", path)
	}
	return content, nil
}

// Delete removes a stored file. Missing files are not an error so
// purge jobs can retry safely.
func (l *Local) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting file %s", path)
	}
	return nil
}

// Size reports the size in bytes of a stored file.
func (l *Local) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, "stat file %s", path)
	}
	return info.Size(), nil
}
