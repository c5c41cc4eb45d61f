package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a stored object for listing.
type ObjectInfo struct {
	Key     string
	ModTime time.Time
}

// Storage is the blob boundary cover images are written through.
// Keys are relative, slash-separated paths ("image/TheMatrixCover.jpg").
type Storage interface {
	// Write stores data under key, replacing any existing object.
	// A failed write must not leave a readable partial object.
	Write(ctx context.Context, key string, data []byte, contentType string) error

	// Remove deletes the object. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
