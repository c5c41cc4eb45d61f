package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"moviecatalog-backend/internal/domains/movie/model"
	"moviecatalog-backend/internal/domains/movie/repository"
	"moviecatalog-backend/pkg/cache"
	"moviecatalog-backend/pkg/logger"
)

// MovieService - Implements ServiceInterface
type MovieService struct {
	repo   repository.RepositoryInterface
	covers *CoverStore
	cache  cache.Cache
}

// NewService - Constructor with DI
func NewService(
	repo repository.RepositoryInterface,
	covers *CoverStore,
	cache cache.Cache,
) ServiceInterface {
	return &MovieService{
		repo:   repo,
		covers: covers,
		cache:  cache,
	}
}

// ListMovies - Filtered catalog listing plus the distinct genre set
func (s *MovieService) ListMovies(ctx context.Context, filter model.MovieFilter) (*model.ListMoviesResult, error) {
	var result model.ListMoviesResult

	// Try to get from cache first
	cacheKey := model.GenerateListCacheKey(filter)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		log.Printf("Cache GET error for key %s: %v", cacheKey, err)
	}
	if found {
		return &result, nil
	}

	// Cache MISS - query database
	log.Printf("Cache MISS for key: %s", cacheKey)

	movies, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies error: %w", err)
	}

	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres error: %w", err)
	}

	responses := make([]model.MovieResponse, len(movies))
	for i := range movies {
		responses[i] = movies[i].ToResponse()
	}

	result = model.ListMoviesResult{
		Movies: responses,
		Genres: genres,
	}

	if err := s.cache.Set(ctx, cacheKey, result, 60*time.Minute); err != nil {
		log.Printf("Cache SET error for key %s: %v", cacheKey, err)
	}

	return &result, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id int64) (*model.MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := movie.ToResponse()
	return &resp, nil
}

// CreateMovie - Validate, store the cover, persist, invalidate caches
func (s *MovieService) CreateMovie(ctx context.Context, input model.MovieInput, cover *model.CoverUpload) (*model.MovieResponse, error) {
	if errs := model.ValidateMovieInput(input, cover); len(errs) > 0 {
		return nil, errs
	}

	movie := input.ToEntity()

	coverPath, err := s.covers.Replace(ctx, "", movie.Title, cover)
	if err != nil {
		return nil, err
	}
	movie.SetCoverPath(coverPath)

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	logger.Info("Movie created", map[string]interface{}{
		"movie_id": movie.ID,
		"title":    movie.Title,
	})

	resp := movie.ToResponse()
	return &resp, nil
}

// UpdateMovie - Full-record replace guarded by optimistic locking. A stale
// version is reported as a conflict, unless the record is gone entirely, in
// which case the caller sees not-found.
func (s *MovieService) UpdateMovie(ctx context.Context, input model.UpdateMovieInput, cover *model.CoverUpload) (*model.MovieResponse, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if errs := model.ValidateMovieInput(input.MovieInput, cover); len(errs) > 0 {
		return nil, errs
	}

	movie := input.MovieInput.ToEntity()
	movie.ID = input.ID
	movie.Version = input.Version
	movie.CreatedAt = existing.CreatedAt

	coverPath, err := s.covers.Replace(ctx, existing.CoverPath(), movie.Title, cover)
	if err != nil {
		return nil, err
	}
	movie.SetCoverPath(coverPath)

	if err := s.repo.Update(ctx, movie); err != nil {
		if errors.Is(err, model.ErrVersionConflict) {
			exists, checkErr := s.repo.ExistsByID(ctx, input.ID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, model.ErrMovieNotFound
			}
		}
		return nil, err
	}

	s.invalidateMovieCaches(ctx, movie.ID)

	logger.Info("Movie updated", map[string]interface{}{
		"movie_id": movie.ID,
		"version":  movie.Version,
	})

	resp := movie.ToResponse()
	return &resp, nil
}

// DeleteMovie - Idempotent: deleting an absent id succeeds quietly
func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	movie, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, model.ErrMovieNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// The record is gone; a stranded cover is cleaned up by the sweep job
	// if this removal fails.
	if err := s.covers.Remove(ctx, movie.CoverPath()); err != nil {
		logger.Warn("Failed to remove cover after delete", map[string]interface{}{
			"movie_id": id,
			"cover":    movie.CoverPath(),
			"error":    err.Error(),
		})
	}

	s.invalidateMovieCaches(ctx, id)

	logger.Info("Movie deleted", map[string]interface{}{
		"movie_id": id,
	})

	return nil
}

// ExportMoviesToExcel - Build an xlsx workbook from the filtered listing
func (s *MovieService) ExportMoviesToExcel(ctx context.Context, filter model.MovieFilter) (*excelize.File, error) {
	result, err := s.ListMovies(ctx, filter)
	if err != nil {
		return nil, err
	}

	f, err := buildMoviesExcelFile(result.Movies)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	return f, nil
}

func buildMoviesExcelFile(movies []model.MovieResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Movie list"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"ID",
		"Title",
		"Release Date",
		"Genre",
		"IMDb",
		"Rating",
		"Director",
		"Trailer",
		"Version",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "I1", headerStyle)
	}

	strOrNil := func(p *string) interface{} {
		if p == nil {
			return nil
		}
		return *p
	}

	for i, m := range movies {
		rowNum := i + 2

		rowStr := func(col int) string {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			return cell
		}

		f.SetCellValue(sheetName, rowStr(1), m.ID)
		f.SetCellValue(sheetName, rowStr(2), m.Title)
		f.SetCellValue(sheetName, rowStr(3), m.ReleaseDate)
		f.SetCellValue(sheetName, rowStr(4), strOrNil(m.Genre))
		f.SetCellValue(sheetName, rowStr(5), m.Imdb.InexactFloat64())
		f.SetCellValue(sheetName, rowStr(6), strOrNil(m.Rating))
		f.SetCellValue(sheetName, rowStr(7), strOrNil(m.Director))
		f.SetCellValue(sheetName, rowStr(8), strOrNil(m.Trailer))
		f.SetCellValue(sheetName, rowStr(9), m.Version)
	}

	return f, nil
}

func (s *MovieService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "movies:list:*"); err != nil {
		log.Printf("Cache invalidation error: %v", err)
	}
}

func (s *MovieService) invalidateMovieCaches(ctx context.Context, id int64) {
	s.invalidateListCache(ctx)
	if err := s.cache.Delete(ctx, model.GenerateDetailCacheKey(id)); err != nil {
		log.Printf("Cache invalidation error for movie %d: %v", id, err)
	}
}
