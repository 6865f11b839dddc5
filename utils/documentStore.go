package utils

import (
	"os"
	"path/filepath"
)

// FileDocumentStore persists rendered certificate documents on disk and
// hands back the file path as the opaque document reference.
type FileDocumentStore struct {
	Dir string
}

func NewFileDocumentStore(dir string) *FileDocumentStore {
	return &FileDocumentStore{Dir: dir}
}

func (s *FileDocumentStore) Save(name string, data []byte) (string, error) {
	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.Dir, name)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetDocumentURL maps a stored document reference to its serving path.
func GetDocumentURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/certificates/" + filepath.Base(ref)
}
