package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/flypacademy/podcast-academy/internal/storage"
	"go.uber.org/zap"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Create creates a new file and returns a WriteCloser
	// The file path is generated based on id and mediaType
	Create(id, mediaType string) (io.WriteCloser, error)

	// Open opens a file for reading and returns a ReadCloser
	Open(id, mediaType string) (io.ReadCloser, error)

	// OpenFile opens a file and returns *os.File for use with http.ServeContent
	OpenFile(id, mediaType string) (*os.File, error)

	// Delete removes a file
	Delete(id, mediaType string) error
}

// MetadataRepository defines the interface for file metadata data access
type MetadataRepository interface {
	Create(ctx context.Context, metadata *models.Metadata) error
	GetByID(ctx context.Context, id string) (*models.Metadata, error)
	DeleteByID(ctx context.Context, id string) error
}

// MediaService handles uploads and downloads of course artwork, episode audio
// and avatars
type MediaService struct {
	metadataRepo MetadataRepository
	storage      Storage
	logger       *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(metadataRepo MetadataRepository, storage Storage, logger *zap.Logger) *MediaService {
	return &MediaService{
		metadataRepo: metadataRepo,
		storage:      storage,
		logger:       logger,
	}
}

// GetMetadataByID retrieves metadata by ID
func (s *MediaService) GetMetadataByID(ctx context.Context, id string) (*models.Metadata, error) {
	return s.metadataRepo.GetByID(ctx, id)
}

// UploadFile streams an upload into storage and records its metadata.
// Audio uploads additionally get their embedded ID3/MP4 tags read back so the
// admin UI can prefill the episode title.
// Returns the metadata URL. extension should include the leading dot (e.g., ".mp3")
func (s *MediaService) UploadFile(ctx context.Context, reader io.Reader, contentType, mediaType, baseURL, extension string) (string, error) {
	// Generate new filename with extension
	filename := storage.GenerateFileName(extension)

	// Count bytes while copying
	sizeWriter := storage.NewSizeWriter()
	teeReader := io.TeeReader(reader, sizeWriter)

	writeCloser, err := s.storage.Create(filename, mediaType)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err = io.Copy(writeCloser, teeReader); err != nil {
		writeCloser.Close()
		// Cleanup: delete the file if copy fails
		s.storage.Delete(filename, mediaType)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := writeCloser.Close(); err != nil {
		s.storage.Delete(filename, mediaType)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	metadata := &models.Metadata{
		ID:          filename,
		ContentType: contentType,
		Size:        sizeWriter.Size(),
		URL:         fmt.Sprintf("%s/api/v1/media/%s/%s", baseURL, mediaType, filename),
		Type:        models.MediaType(mediaType),
	}

	if models.MediaType(mediaType) == models.MediaTypeEpisodeAudio {
		s.readAudioTags(filename, mediaType, metadata)
	}

	if err := s.metadataRepo.Create(ctx, metadata); err != nil {
		// Cleanup: delete the file if metadata creation fails
		s.storage.Delete(filename, mediaType)
		return "", fmt.Errorf("failed to create metadata: %w", err)
	}

	return fmt.Sprintf("%s/api/v1/media/%s", baseURL, filename), nil
}

// DeleteFile removes both the file and its metadata record
func (s *MediaService) DeleteFile(ctx context.Context, filename, mediaType string) error {
	err := s.storage.Delete(filename, mediaType)

	if err != nil && os.IsNotExist(err) {
		return fmt.Errorf("file not found: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	if err := s.metadataRepo.DeleteByID(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}

	return nil
}

// GetFileReader returns a ReadCloser for the file
func (s *MediaService) GetFileReader(filename, mediaType string) (io.ReadCloser, error) {
	return s.storage.Open(filename, mediaType)
}

// GetFile returns an *os.File for use with http.ServeContent
func (s *MediaService) GetFile(filename, mediaType string) (*os.File, error) {
	return s.storage.OpenFile(filename, mediaType)
}

// readAudioTags reads title and artist from the stored audio file's embedded
// tags. Missing or unreadable tags are not an upload error.
func (s *MediaService) readAudioTags(filename, mediaType string, metadata *models.Metadata) {
	file, err := s.storage.OpenFile(filename, mediaType)
	if err != nil {
		s.logger.Warn("failed to reopen audio file for tag reading", zap.String("filename", filename), zap.Error(err))
		return
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		s.logger.Debug("no readable tags in audio file", zap.String("filename", filename), zap.Error(err))
		return
	}

	metadata.Title = tags.Title()
	metadata.Artist = tags.Artist()
}

// InferExtensionFromContentType infers the extension from the content type
//
// Returns the inferred extension, or empty string if the extension cannot be inferred.
func (s *MediaService) InferExtensionFromContentType(contentType string) string {
	contentTypeMap := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
		"audio/mpeg": ".mp3",
		"audio/mp4":  ".m4a",
		"audio/wav":  ".wav",
		"audio/ogg":  ".ogg",
		"audio/flac": ".flac",
	}

	if ext, ok := contentTypeMap[contentType]; ok {
		return ext
	}
	return ""
}

// IsValidMediaType checks if the media type is valid
func (s *MediaService) IsValidMediaType(mediaType string) bool {
	return models.ValidMediaType(mediaType)
}
