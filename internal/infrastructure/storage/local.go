package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStore persists uploaded files under a single directory and hands back
// public URL paths. File contents are never inspected: format and size
// validation is out of scope here.
type LocalStore struct {
	dir          string
	publicPrefix string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, publicPrefix: publicPrefix}, nil
}

// Save writes src under a storage-unique name and returns the public path.
// The name combines a nanosecond timestamp with a random suffix so that
// concurrent uploads never collide; the original extension is preserved.
func (s *LocalStore) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], filepath.Ext(originalName))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
