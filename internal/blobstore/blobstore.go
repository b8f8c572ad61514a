package blobstore

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxBlobSize = 50 * 1024 * 1024 // 50 MB

// Photo uploads only; anything else is rejected before hitting disk.
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var (
	ErrEmptyBlob       = errors.New("blob is empty")
	ErrBlobTooLarge    = errors.New("blob exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrNotFound        = errors.New("blob not found")
)

// Store is the blob store adapter: binary content in, durable public
// URL out. Keys are namespaced as {uploaderID}/{generatedName}.
type Store interface {
	Upload(key string, content []byte) (string, error)
	Remove(key string) error
	PublicURL(key string) string
}

// NewKey builds an object key scoped to the uploader. The original
// filename only contributes its extension; the name itself is random.
func NewKey(uploaderID, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyBlob
	}
	if len(content) > MaxBlobSize {
		return "", ErrBlobTooLarge
	}

	sniff := content
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	mimeType := strings.Split(http.DetectContentType(sniff), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return "", ErrInvalidMimeType
	}
	if e := strings.ToLower(filepath.Ext(filename)); e != "" {
		ext = e
	}

	return uploaderID + "/" + uuid.New().String() + ext, nil
}

// DiskStore keeps blobs on the local filesystem and serves them from a
// static URL prefix. It is the development stand-in for a hosted
// object store.
type DiskStore struct {
	baseDir    string
	staticBase string
}

func NewDiskStore(baseDir, staticBase string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &DiskStore{baseDir: baseDir, staticBase: staticBase}
}

func (s *DiskStore) Upload(key string, content []byte) (string, error) {
	absPath, err := s.absPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *DiskStore) Remove(key string) error {
	absPath, err := s.absPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

func (s *DiskStore) PublicURL(key string) string {
	return s.staticBase + "/" + key
}

// BaseDir exposes the root so the HTTP layer can mount static serving.
func (s *DiskStore) BaseDir() string { return s.baseDir }

func (s *DiskStore) absPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}
