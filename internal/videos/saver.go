package videos

import (
	"os"
	"path/filepath"
)

// Saver delivers a downloaded artifact to the user. The web client handed
// the blob to the browser's save dialog; here the default implementation
// writes into a download directory.
type Saver interface {
	// Save writes data under name and returns the absolute location.
	Save(name string, data []byte) (string, error)
}

type dirSaver struct {
	dir string
}

// NewDirSaver returns a Saver writing into dir, creating it when missing.
func NewDirSaver(dir string) Saver {
	return &dirSaver{dir: dir}
}

func (s *dirSaver) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
