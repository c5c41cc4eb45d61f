package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movie is the catalog entity: one record per movie, optionally with a
// stored cover image and an embeddable trailer link.
type Movie struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	ReleaseDate time.Time       `json:"release_date" db:"release_date"`
	Genre       *string         `json:"genre" db:"genre"`
	Imdb        decimal.Decimal `json:"imdb" db:"imdb"`
	Rating      *string         `json:"rating" db:"rating"`

	// Image is the relative cover path inside the storage backend
	// ("image/TheMatrixCover.jpg"), nil if no cover was ever uploaded.
	Image   *string `json:"image" db:"image"`
	Trailer *string `json:"trailer" db:"trailer"`

	Description *string `json:"description" db:"description"`
	Director    *string `json:"director" db:"director"`

	// Version backs optimistic locking; incremented on every update.
	Version int `json:"version" db:"version"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CoverPath returns the stored cover key or "" when no cover exists.
func (m *Movie) CoverPath() string {
	if m.Image == nil {
		return ""
	}
	return *m.Image
}

// SetCoverPath stores the cover key, clearing it for "".
func (m *Movie) SetCoverPath(path string) {
	if path == "" {
		m.Image = nil
		return
	}
	m.Image = &path
}
