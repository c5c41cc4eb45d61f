package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moviecatalog-backend/internal/domains/movie/model"
)

// postgresRepository - raw SQL on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const movieColumns = `
	id, title, release_date, genre, imdb, rating,
	image, trailer, description, director,
	version, created_at, updated_at`

func scanMovie(row pgx.Row, m *model.Movie) error {
	return row.Scan(
		&m.ID, &m.Title, &m.ReleaseDate, &m.Genre, &m.Imdb, &m.Rating,
		&m.Image, &m.Trailer, &m.Description, &m.Director,
		&m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
}

// Create inserts the movie; the database assigns the id.
func (r *postgresRepository) Create(ctx context.Context, movie *model.Movie) error {
	query := `
		INSERT INTO movies (
			title, release_date, genre, imdb, rating,
			image, trailer, description, director
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		movie.Title, movie.ReleaseDate, movie.Genre, movie.Imdb, movie.Rating,
		movie.Image, movie.Trailer, movie.Description, movie.Director,
	).Scan(&movie.ID, &movie.Version, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	query := `SELECT` + movieColumns + ` FROM movies WHERE id = $1`

	var movie model.Movie
	err := scanMovie(r.pool.QueryRow(ctx, query, id), &movie)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}

	return &movie, nil
}

// GetAll filters by exact genre and by case-sensitive title substring.
func (r *postgresRepository) GetAll(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error) {
	query := `SELECT` + movieColumns + ` FROM movies WHERE true`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		// LIKE is case-sensitive in Postgres, matching the substring
		// semantics of the catalog search.
		query += fmt.Sprintf(" AND title LIKE '%%' || $%d || '%%'", argIndex)
		args = append(args, filter.Search)
		argIndex++
	}
	if filter.Genre != "" {
		query += fmt.Sprintf(" AND genre = $%d", argIndex)
		args = append(args, filter.Genre)
		argIndex++
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		var movie model.Movie
		if err := scanMovie(rows, &movie); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return movies, nil
}

func (r *postgresRepository) ListGenres(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT genre FROM movies
		WHERE genre IS NOT NULL
		ORDER BY genre
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]string, 0)
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return genres, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movie %d: %w", id, err)
	}
	return exists, nil
}

// Update writes the record with optimistic locking: the row is matched on
// id AND the version the caller read, so a concurrent modification (or a
// concurrent delete) makes this affect zero rows.
func (r *postgresRepository) Update(ctx context.Context, movie *model.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, release_date = $2, genre = $3, imdb = $4, rating = $5,
		    image = $6, trailer = $7, description = $8, director = $9,
		    version = version + 1, updated_at = $10
		WHERE id = $11 AND version = $12
		RETURNING version, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		movie.Title, movie.ReleaseDate, movie.Genre, movie.Imdb, movie.Rating,
		movie.Image, movie.Trailer, movie.Description, movie.Director,
		time.Now().UTC(),
		movie.ID, movie.Version,
	).Scan(&movie.Version, &movie.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", movie.ID, err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	return nil
}

func (r *postgresRepository) ListCoverPaths(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image FROM movies WHERE image IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover paths: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan cover path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return paths, nil
}
