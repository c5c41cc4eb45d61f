package model

import (
	"crypto/md5"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Genre: one or more uppercase letters, then letters/whitespace/hyphens.
// Content rating: uppercase start, then letters/digits/quotes/whitespace/hyphens.
var (
	genreRx  = regexp.MustCompile(`^[A-Z]+[a-zA-Z\s-]*$`)
	ratingRx = regexp.MustCompile(`^[A-Z]+[a-zA-Z0-9"'\s-]*$`)
)

// MovieInput is the set of fields accepted from untrusted input on create
// and update. Server-managed fields (id, version, image path, timestamps)
// are deliberately not bindable here.
type MovieInput struct {
	Title       string    `form:"title" json:"title"`
	ReleaseDate time.Time `form:"release_date" json:"release_date" time_format:"2006-01-02"`
	Genre       string    `form:"genre" json:"genre"`
	Imdb        string    `form:"imdb" json:"imdb"`
	Rating      string    `form:"rating" json:"rating"`
	Trailer     string    `form:"trailer" json:"trailer"`
	Description string    `form:"description" json:"description"`
	Director    string    `form:"director" json:"director"`
}

// UpdateMovieInput additionally carries the record identity and the version
// the client last read, for optimistic-conflict detection.
type UpdateMovieInput struct {
	MovieInput
	ID      int64 `form:"id" json:"id"`
	Version int   `form:"version" json:"version"`
}

// Validate reports every violated field at once as validation.Errors.
func (r MovieInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 60).Error("title must be between 3 and 60 characters"),
		),
		validation.Field(&r.Genre,
			validation.Length(0, 30).Error("genre must be at most 30 characters"),
			validation.Match(genreRx).Error("genre must start with an uppercase letter and contain only letters, spaces and hyphens"),
		),
		validation.Field(&r.Imdb,
			validation.By(validScore),
		),
		validation.Field(&r.Rating,
			validation.Length(0, 5).Error("rating must be at most 5 characters"),
			validation.Match(ratingRx).Error("rating must start with an uppercase letter"),
		),
	)
}

// validScore checks that the IMDb score parses as a decimal in [0, 10].
// An empty value is treated as 0 like an omitted form field.
func validScore(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	score, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("must be a decimal number")
	}
	if score.LessThan(decimal.Zero) || score.GreaterThan(decimal.NewFromInt(10)) {
		return errors.New("must be between 0 and 10")
	}
	return nil
}

// CoverUpload is an uploaded cover image, already read into memory.
type CoverUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MaxCoverSize caps uploaded covers at 5MB.
const MaxCoverSize = 5 << 20

var allowedCoverTypes = map[string]struct{}{
	"image/jpg":  {},
	"image/png":  {},
	"image/jpeg": {},
}

// Validate checks the declared content type (case-insensitive) and size.
func (u *CoverUpload) Validate() error {
	if u == nil {
		return nil
	}
	if _, ok := allowedCoverTypes[strings.ToLower(u.ContentType)]; !ok {
		return errors.New("the file must be an image (.jpg, .png, .jpeg)")
	}
	if int64(len(u.Data)) > MaxCoverSize {
		return errors.New("image exceeds 5MB")
	}
	return nil
}

// ValidateMovieInput runs field validation and the cover content-type check,
// merging everything into one field->error map. A nil return means valid.
func ValidateMovieInput(in MovieInput, cover *CoverUpload) validation.Errors {
	errs := validation.Errors{}

	if err := in.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			for field, ferr := range fieldErrs {
				errs[field] = ferr
			}
		} else {
			errs["input"] = err
		}
	}

	if err := cover.Validate(); err != nil {
		errs["image"] = err
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToEntity builds the entity from validated input. The score is rounded to
// two fractional digits, matching the NUMERIC(4,2) column.
func (r MovieInput) ToEntity() *Movie {
	score := decimal.Zero
	if r.Imdb != "" {
		// Already validated; a parse failure here cannot happen.
		score, _ = decimal.NewFromString(r.Imdb)
	}

	return &Movie{
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Genre:       optional(r.Genre),
		Imdb:        score.Round(2),
		Rating:      optional(r.Rating),
		Trailer:     optional(NormalizeTrailer(r.Trailer)),
		Description: optional(r.Description),
		Director:    optional(r.Director),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MovieFilter narrows List results.
type MovieFilter struct {
	// Genre filters on exact genre match when non-empty.
	Genre string
	// Search filters on case-sensitive title substring when non-empty.
	Search string
}

// MovieResponse is the read DTO.
type MovieResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	ReleaseDate string          `json:"release_date"`
	Genre       *string         `json:"genre,omitempty"`
	Imdb        decimal.Decimal `json:"imdb"`
	Rating      *string         `json:"rating,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Trailer     *string         `json:"trailer,omitempty"`
	Description *string         `json:"description,omitempty"`
	Director    *string         `json:"director,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListMoviesResult bundles the filtered movies with the distinct genres
// currently in the catalog (used to populate the genre filter).
type ListMoviesResult struct {
	Movies []MovieResponse `json:"movies"`
	Genres []string        `json:"genres"`
}

// ToResponse converts a Movie to its read DTO.
func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
		Genre:       m.Genre,
		Imdb:        m.Imdb,
		Rating:      m.Rating,
		Image:       m.Image,
		Trailer:     m.Trailer,
		Description: m.Description,
		Director:    m.Director,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GenerateListCacheKey hashes the filter into a stable cache key under the
// movies:list: prefix so invalidation can use one pattern.
func GenerateListCacheKey(filter MovieFilter) string {
	data := fmt.Sprintf("genre=%s|search=%s", filter.Genre, filter.Search)
	hash := md5.Sum([]byte(data))
	return fmt.Sprintf("movies:list:%x", hash)
}

// GenerateDetailCacheKey builds the cache key for a single movie.
func GenerateDetailCacheKey(id int64) string {
	return fmt.Sprintf("movies:detail:%d", id)
}
