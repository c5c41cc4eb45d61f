package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"moviecatalog-backend/internal/shared/response"
)

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrVersionConflict = errors.New("version conflict: movie was modified by another user")
	ErrIDMismatch      = errors.New("path id does not match body id")
)

var movieErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrMovieNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "The specified movie does not exist",
	},
	ErrVersionConflict: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "The movie has been modified by another user. Please refresh and try again",
	},
	ErrIDMismatch: {
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: "The id in the URL does not match the id in the request body",
	},
}

// HandleMovieError writes the HTTP response for a service error and reports
// whether err was non-nil. Validation failures carry the full field map in
// the response details.
func HandleMovieError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationFailed(c, fieldErrs)
		return true
	}

	for sentinel, mapped := range movieErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, mapped.Status, mapped.Code, mapped.Message)
			return true
		}
	}

	log.Error().
		Str("request_id", c.GetString("request_id")).
		Err(err).
		Msg("Unhandled movie error")
	response.InternalServerError(c, "Internal server error")
	return true
}
