// Package uploads stores user-submitted image files on local disk and
// builds the public URLs they are served from.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"postpilot/internal/models"
)

const (
	DefaultMaxUploadSizeMB = 5
	uploadDirPerm          = 0o755
	uploadFilePerm         = 0o644
)

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

// Saved describes a stored upload.
type Saved struct {
	Path string // filesystem path, relative to the working directory
	Name string // stored filename
	URL  string // public URL the file is served from
}

// Store writes uploads under a single directory with timestamped filenames.
type Store struct {
	dir          string
	baseURL      string
	maxSizeBytes int64
	now          func() time.Time
}

// NewStore creates a Store rooted at dir. Files become reachable under
// baseURL + "/uploads/<name>".
func NewStore(dir, baseURL string) *Store {
	return &Store{
		dir:          dir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxSizeBytes: DefaultMaxUploadSizeMB * 1024 * 1024,
		now:          time.Now,
	}
}

// Save validates and persists an uploaded file. Only JPEG and PNG uploads
// within the size cap are accepted.
func (s *Store) Save(file *multipart.FileHeader) (Saved, error) {
	if file.Size > s.maxSizeBytes {
		return Saved{}, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", DefaultMaxUploadSizeMB))
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedContentTypes[contentType]; !ok {
		return Saved{}, models.NewValidationError("Only JPEG and PNG images are allowed")
	}

	if err := os.MkdirAll(s.dir, uploadDirPerm); err != nil {
		return Saved{}, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeFilename(file.Filename))
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return Saved{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, uploadFilePerm)
	if err != nil {
		return Saved{}, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := out.ReadFrom(src); err != nil {
		_ = os.Remove(dst)
		return Saved{}, fmt.Errorf("failed to write upload file: %w", err)
	}

	return Saved{
		Path: dst,
		Name: name,
		URL:  s.baseURL + "/uploads/" + name,
	}, nil
}

// sanitizeFilename strips any path components from a client-supplied name.
func sanitizeFilename(name string) string {
	name = path.Base(filepath.ToSlash(name))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return strings.ReplaceAll(name, " ", "_")
}
