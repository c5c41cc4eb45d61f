package repository

import (
	"context"

	"moviecatalog-backend/internal/domains/movie/model"
)

// RepositoryInterface is the persistence boundary for movie records.
type RepositoryInterface interface {
	// Create inserts the movie and fills in its assigned id, version and
	// timestamps.
	Create(ctx context.Context, movie *model.Movie) error

	// GetByID returns the movie or model.ErrMovieNotFound.
	GetByID(ctx context.Context, id int64) (*model.Movie, error)

	// GetAll returns the movies matching the filter, newest first.
	GetAll(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error)

	// ListGenres returns the distinct genres present, sorted.
	ListGenres(ctx context.Context) ([]string, error)

	// ExistsByID reports whether a movie with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Update writes the movie using its version as the conflict key and
	// returns model.ErrVersionConflict when no row matched.
	Update(ctx context.Context, movie *model.Movie) error

	// Delete removes the movie row. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// ListCoverPaths returns every non-null stored cover path; used by the
	// orphan-cover sweep.
	ListCoverPaths(ctx context.Context) ([]string, error)
}
