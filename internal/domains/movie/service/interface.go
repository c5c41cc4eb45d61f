package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"moviecatalog-backend/internal/domains/movie/model"
)

// ServiceInterface - Contract for movie business logic
type ServiceInterface interface {
	ListMovies(ctx context.Context, filter model.MovieFilter) (*model.ListMoviesResult, error)
	GetMovie(ctx context.Context, id int64) (*model.MovieResponse, error)
	CreateMovie(ctx context.Context, input model.MovieInput, cover *model.CoverUpload) (*model.MovieResponse, error)
	UpdateMovie(ctx context.Context, input model.UpdateMovieInput, cover *model.CoverUpload) (*model.MovieResponse, error)
	DeleteMovie(ctx context.Context, id int64) error
	ExportMoviesToExcel(ctx context.Context, filter model.MovieFilter) (*excelize.File, error)
}
