package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moviecatalog-backend/internal/domains/movie/model"
	service "moviecatalog-backend/internal/domains/movie/service"
	"moviecatalog-backend/internal/shared/response"
	"moviecatalog-backend/pkg/cache"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

// ListMovies - GET /v1/movies
// Query params: genre, search
func (h *Handler) ListMovies(c *gin.Context) {
	filter := model.MovieFilter{
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}

	result, err := h.service.ListMovies(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to list movies")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ExportMovies - GET /v1/movies/export
// Streams the filtered catalog as an xlsx attachment.
func (h *Handler) ExportMovies(c *gin.Context) {
	filter := model.MovieFilter{
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}

	f, err := h.service.ExportMoviesToExcel(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to export movies")
		return
	}

	filename := fmt.Sprintf("movies_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[Handler] Failed to write excel response: %v", err)
	}
}

// GetMovie - GET /v1/movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid movie id")
		return
	}

	// Check cache first
	cacheKey := model.GenerateDetailCacheKey(id)
	var cached model.MovieResponse
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.Success(c, http.StatusOK, &cached)
		return
	}
	if err != nil {
		log.Printf("[Handler] Cache error for key %s: %v", cacheKey, err)
	}

	movie, err := h.service.GetMovie(c.Request.Context(), id)
	if model.HandleMovieError(c, err) {
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, movie, 60*time.Minute); err != nil {
		log.Printf("[Handler] Cache SET error for key %s: %v", cacheKey, err)
	}

	response.Success(c, http.StatusOK, movie)
}

// CreateMovie - POST /v1/movies
// Multipart form: title, release_date, genre, imdb, rating, trailer,
// description, director, plus an optional "image" file part.
func (h *Handler) CreateMovie(c *gin.Context) {
	var input model.MovieInput
	if err := c.ShouldBind(&input); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}

	cover, err := readCoverUpload(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	movie, err := h.service.CreateMovie(c.Request.Context(), input, cover)
	if model.HandleMovieError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, movie)
}

// UpdateMovie - PUT /v1/movies/:id
// Full-record replace. The body must carry the id matching the path and the
// version the client last read.
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid movie id")
		return
	}

	var input model.UpdateMovieInput
	if err := c.ShouldBind(&input); err != nil {
		response.BadRequest(c, "invalid form data: "+err.Error())
		return
	}

	if input.ID != id {
		model.HandleMovieError(c, model.ErrIDMismatch)
		return
	}

	cover, err := readCoverUpload(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	movie, err := h.service.UpdateMovie(c.Request.Context(), input, cover)
	if model.HandleMovieError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, movie)
}

// DeleteMovie - DELETE /v1/movies/:id
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid movie id")
		return
	}

	if err := h.service.DeleteMovie(c.Request.Context(), id); model.HandleMovieError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// readCoverUpload pulls the optional "image" file part into memory. A missing
// part returns a nil upload; content-type and size checks happen in the model
// so violations land in the same field->error map as the rest of the form.
func readCoverUpload(c *gin.Context) (*model.CoverUpload, error) {
	fileHeader, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image part: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, model.MaxCoverSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file")
	}

	return &model.CoverUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
