// Package storage persists binary assets such as product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"shopapi/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for paths that would escape the store.
var ErrInvalidPath = errors.New("invalid asset path")

// AssetStore stores files under generated, store-relative paths.
type AssetStore interface {
	// Put stores the upload under dir and returns its generated path.
	Put(ctx context.Context, dir string, upload *models.Upload) (string, error)
	// Delete removes the asset; deleting a missing asset is not an error.
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// NewAssetPath generates a unique path for an upload inside dir.
func NewAssetPath(dir string, upload *models.Upload) string {
	name := uuid.NewString()
	if ext := upload.Ext(); ext != "" {
		name += "." + ext
	}
	return path.Join(dir, name)
}

// cleanPath normalises a store-relative path and rejects traversal.
func cleanPath(p string) (string, error) {
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}
