// Package storage provides object storage for inspection photos.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ObjectStore is the contract handlers and the reconciler depend on. The S3
// implementation talks to any S3-compatible backend; the memory implementation
// backs tests and local development.
type ObjectStore interface {
	// EnsureBucket creates the bucket if it does not exist yet.
	EnsureBucket(ctx context.Context) error
	// Upload writes the object bytes under key.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL returns the durable, non-expiring URL for an uploaded object.
	// The bucket is public; anyone holding the URL can fetch the photo.
	PublicURL(key string) string
}

// ObjectKey derives the storage key for an inspection photo. Collision
// avoidance is timestamp based: two uploads of the same filename for the same
// inspection in the same millisecond would collide, which the original data
// never hit in practice.
func ObjectKey(inspectionID int64, filename string, at time.Time) string {
	return fmt.Sprintf("inspections/%d_%d_%s", inspectionID, at.UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	// keep the extension and base readable, drop path separators and spaces
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "photo"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
