// Package storage keeps binary objects (student photos) on local disk or in
// an S3-compatible bucket, and signs expiring share links.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrObjectNotFound is returned when a key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the contract shared by the disk and bucket backends.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey normalises an object key and rejects keys escaping the root.
func CleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if trimmed == "" {
		return "", fmt.Errorf("object key required")
	}
	cleaned := path.Clean("/" + trimmed)
	if cleaned == "/" || strings.Contains(trimmed, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
