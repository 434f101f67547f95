package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName matches the key the web client used in localStorage.
const DefaultFileName = "authToken"

type fileStore struct {
	path string
}

// NewFileStore creates a Store backed by a single file at path. The parent
// directory is created on first save. The file is written with 0600 since it
// holds a live credential.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// DefaultPath returns the conventional token location under the user's
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "videounpack", DefaultFileName), nil
}

func (s *fileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *fileStore) Read() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *fileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
