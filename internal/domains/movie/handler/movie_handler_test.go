package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"moviecatalog-backend/internal/domains/movie/model"
)

// stubService records the last call and returns canned results.
type stubService struct {
	createInput model.MovieInput
	createCover *model.CoverUpload
	createErr   error

	updateInput model.UpdateMovieInput
	updateErr   error

	deleteID  int64
	deleteErr error
}

func (s *stubService) ListMovies(context.Context, model.MovieFilter) (*model.ListMoviesResult, error) {
	return &model.ListMoviesResult{Movies: []model.MovieResponse{}, Genres: []string{}}, nil
}

func (s *stubService) GetMovie(_ context.Context, id int64) (*model.MovieResponse, error) {
	if id == 404 {
		return nil, model.ErrMovieNotFound
	}
	return &model.MovieResponse{ID: id, Title: "Stubbed"}, nil
}

func (s *stubService) CreateMovie(_ context.Context, input model.MovieInput, cover *model.CoverUpload) (*model.MovieResponse, error) {
	s.createInput = input
	s.createCover = cover
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.MovieResponse{ID: 1, Title: input.Title, Version: 1}, nil
}

func (s *stubService) UpdateMovie(_ context.Context, input model.UpdateMovieInput, _ *model.CoverUpload) (*model.MovieResponse, error) {
	s.updateInput = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &model.MovieResponse{ID: input.ID, Title: input.Title, Version: input.Version + 1}, nil
}

func (s *stubService) DeleteMovie(_ context.Context, id int64) error {
	s.deleteID = id
	return s.deleteErr
}

func (s *stubService) ExportMoviesToExcel(context.Context, model.MovieFilter) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

// noopCache always misses.
type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error     { return nil }
func (noopCache) DeletePattern(context.Context, string) error { return nil }
func (noopCache) Ping(context.Context) error                  { return nil }

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, noopCache{})

	r := gin.New()
	movies := r.Group("/api/v1/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/:id", h.GetMovie)
		movies.POST("", h.CreateMovie)
		movies.PUT("/:id", h.UpdateMovie)
		movies.DELETE("/:id", h.DeleteMovie)
	}
	return r
}

func multipartBody(t *testing.T, fields map[string]string, imageName, imageType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="image"; filename="` + imageName + `"`}
		hdr["Content-Type"] = []string{imageType}
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestCreateMovie_BindsMultipartForm(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "The Matrix",
		"release_date": "1999-03-31",
		"genre":        "Science Fiction",
		"imdb":         "8.7",
		"rating":       "R",
		"trailer":      "https://www.youtube.com/watch?v=vKQi3bBA1y8",
		"director":     "The Wachowskis",
	}, "poster.png", "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "The Matrix", svc.createInput.Title)
	assert.Equal(t, "8.7", svc.createInput.Imdb)
	assert.Equal(t, 1999, svc.createInput.ReleaseDate.Year())
	require.NotNil(t, svc.createCover)
	assert.Equal(t, "poster.png", svc.createCover.Filename)
	assert.Equal(t, "image/png", svc.createCover.ContentType)
}

func TestCreateMovie_MissingImagePartIsNil(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"title": "Heat"}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.createCover)
}

func TestCreateMovie_ValidationErrorsReturn400(t *testing.T) {
	svc := &stubService{
		createErr: validation.Errors{"title": assert.AnError},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"title": "Ab"}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestUpdateMovie_IDMismatchReturns400(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"id":      "2",
		"version": "1",
		"title":   "The Matrix",
	}, "", "")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/movies/1", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Service must not have been reached.
	assert.Zero(t, svc.updateInput.ID)
}

func TestUpdateMovie_ConflictReturns409(t *testing.T) {
	svc := &stubService{updateErr: model.ErrVersionConflict}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"id":      "1",
		"version": "1",
		"title":   "The Matrix",
	}, "", "")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/movies/1", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetMovie_NotFoundReturns404(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovie_InvalidIDReturns400(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMovie_Returns204(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/movies/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), svc.deleteID)
}
