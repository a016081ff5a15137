// Package storage provides local-disk image storage for recipe uploads.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ErrNotAnImage is returned when an upload is not an accepted image type
var ErrNotAnImage = errors.New("file is not an accepted image type")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStore writes uploaded images to a directory on disk and serves them
// back under /uploads.
type LocalStore struct {
	root    string
	maxSize int64
	logger  *zap.Logger
}

// NewLocalStore creates the store and its directory
func NewLocalStore(root string, maxSize int64, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{root: root, maxSize: maxSize, logger: logger}, nil
}

// Root returns the directory images are written to
func (s *LocalStore) Root() string {
	return s.root
}

// SaveImage validates and persists an uploaded image, returning its public
// URL path. Both the file extension and the declared content type must look
// like an image.
func (s *LocalStore) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	path := filepath.Join(s.root, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Debug("stored uploaded image",
		zap.String("file", name),
		zap.Int64("size", header.Size),
	)
	return "/uploads/" + name, nil
}
