package media

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("media storage is not configured")
	ErrUnsupported   = errors.New("unsupported media type")
)

// MaxUploadSize bounds a single upload.
const MaxUploadSize = 5 << 20

// URLExpiry is how long a returned media URL stays valid.
const URLExpiry = 7 * 24 * time.Hour

// Store persists uploaded files.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

var allowed = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ObjectKey returns a unique key for an upload of contentType under folder.
func ObjectKey(folder, contentType string) (string, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupported
	}
	ext, ok := allowed[strings.ToLower(mt)]
	if !ok {
		return "", ErrUnsupported
	}
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" {
		folder = "uploads"
	}
	return folder + "/" + uuid.NewString() + ext, nil
}
