package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"moviecatalog-backend/internal/domains/movie/model"
	"moviecatalog-backend/internal/infrastructure/storage"
	"moviecatalog-backend/internal/shared/utils"
)

const coverPrefix = "image/"

// CoverStore manages the single cover slot each movie owns in object storage.
type CoverStore struct {
	storage storage.Storage
}

func NewCoverStore(st storage.Storage) *CoverStore {
	return &CoverStore{storage: st}
}

// CoverKey derives the storage key from the movie title and the uploaded
// file's extension. The title is sanitized so the key stays path-safe.
func (cs *CoverStore) CoverKey(title, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return coverPrefix + utils.SanitizeTitle(title) + "Cover" + ext
}

// Replace swaps the movie's cover for the uploaded one and returns the new
// storage key. A nil upload leaves the current cover untouched. The current
// object is removed first so a changed extension never strands the old file.
func (cs *CoverStore) Replace(ctx context.Context, currentPath, title string, upload *model.CoverUpload) (string, error) {
	if upload == nil {
		return currentPath, nil
	}

	if currentPath != "" {
		if err := cs.storage.Remove(ctx, currentPath); err != nil {
			return "", fmt.Errorf("failed to remove current cover %s: %w", currentPath, err)
		}
	}

	key := cs.CoverKey(title, upload.Filename)
	if err := cs.storage.Write(ctx, key, upload.Data, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to store cover %s: %w", key, err)
	}

	return key, nil
}

// Remove deletes the cover object. Removing a path that is already gone is
// not an error.
func (cs *CoverStore) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return cs.storage.Remove(ctx, path)
}
