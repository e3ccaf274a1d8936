package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// localStorage stores media files on the local filesystem, grouped into
// per-media-type subdirectories under a base path
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// generatePath builds the full file path for an id and media type.
// Underscores in the media type become path separators, so "episode_audio"
// maps to <base>/episode/audio/<id>.
func (s *localStorage) generatePath(id, mediaType string) string {
	typePath := strings.ReplaceAll(mediaType, "_", string(filepath.Separator))
	return filepath.Join(s.basePath, typePath, id)
}

// Create creates a new file and returns a WriteCloser, making the media type
// directory on first use
func (s *localStorage) Create(id, mediaType string) (io.WriteCloser, error) {
	path := s.generatePath(id, mediaType)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// Open opens a file for reading and returns a ReadCloser
func (s *localStorage) Open(id, mediaType string) (io.ReadCloser, error) {
	return os.Open(s.generatePath(id, mediaType))
}

// OpenFile opens a file and returns *os.File. Audio responses go through
// http.ServeContent, which needs the seekable file for range requests.
func (s *localStorage) OpenFile(id, mediaType string) (*os.File, error) {
	return os.Open(s.generatePath(id, mediaType))
}

// Stat returns file info without opening the file for reading
func (s *localStorage) Stat(id, mediaType string) (fs.FileInfo, error) {
	return os.Stat(s.generatePath(id, mediaType))
}

// Delete removes a file
func (s *localStorage) Delete(id, mediaType string) error {
	return os.Remove(s.generatePath(id, mediaType))
}
