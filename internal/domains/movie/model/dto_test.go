package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() MovieInput {
	return MovieInput{
		Title:       "The Matrix",
		ReleaseDate: time.Date(1999, 3, 31, 0, 0, 0, 0, time.UTC),
		Genre:       "Science Fiction",
		Imdb:        "8.7",
		Rating:      "R",
		Trailer:     "https://www.youtube.com/watch?v=vKQi3bBA1y8",
	}
}

func TestValidateMovieInput_Fields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*MovieInput)
		wantField string
	}{
		{"valid input", func(in *MovieInput) {}, ""},
		{"title missing", func(in *MovieInput) { in.Title = "" }, "title"},
		{"title too short", func(in *MovieInput) { in.Title = "Ab" }, "title"},
		{"title too long", func(in *MovieInput) { in.Title = strings.Repeat("a", 61) }, "title"},
		{"title at lower bound", func(in *MovieInput) { in.Title = "Her" }, ""},
		{"title at upper bound", func(in *MovieInput) { in.Title = strings.Repeat("a", 60) }, ""},
		{"genre lowercase start", func(in *MovieInput) { in.Genre = "action" }, "genre"},
		{"genre single word", func(in *MovieInput) { in.Genre = "Action" }, ""},
		{"genre with hyphen", func(in *MovieInput) { in.Genre = "Sci-Fi" }, ""},
		{"genre too long", func(in *MovieInput) { in.Genre = "A" + strings.Repeat("b", 30) }, "genre"},
		{"genre empty is fine", func(in *MovieInput) { in.Genre = "" }, ""},
		{"score not a number", func(in *MovieInput) { in.Imdb = "great" }, "imdb"},
		{"score above ten", func(in *MovieInput) { in.Imdb = "10.1" }, "imdb"},
		{"score negative", func(in *MovieInput) { in.Imdb = "-1" }, "imdb"},
		{"score at bounds", func(in *MovieInput) { in.Imdb = "10" }, ""},
		{"score empty is fine", func(in *MovieInput) { in.Imdb = "" }, ""},
		{"rating lowercase start", func(in *MovieInput) { in.Rating = "pg" }, "rating"},
		{"rating with digits", func(in *MovieInput) { in.Rating = "PG-13" }, ""},
		{"rating too long", func(in *MovieInput) { in.Rating = "PG-134" }, "rating"},
		{"rating empty is fine", func(in *MovieInput) { in.Rating = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := ValidateMovieInput(in, nil)
			if tt.wantField == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestValidateMovieInput_ReportsAllViolationsAtOnce(t *testing.T) {
	in := validInput()
	in.Title = "Ab"
	in.Genre = "action"
	in.Imdb = "11"

	errs := ValidateMovieInput(in, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "genre")
	assert.Contains(t, errs, "imdb")
}

func TestValidateMovieInput_Cover(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int
		wantErr     bool
	}{
		{"jpeg accepted", "image/jpeg", 100, false},
		{"jpg accepted", "image/jpg", 100, false},
		{"png accepted", "image/png", 100, false},
		{"content type is case-insensitive", "IMAGE/PNG", 100, false},
		{"pdf rejected", "application/pdf", 100, true},
		{"plain text rejected", "text/plain", 100, true},
		{"oversized cover rejected", "image/png", MaxCoverSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cover := &CoverUpload{
				Filename:    "cover.png",
				ContentType: tt.contentType,
				Data:        make([]byte, tt.size),
			}

			errs := ValidateMovieInput(validInput(), cover)
			if tt.wantErr {
				require.NotNil(t, errs)
				assert.Contains(t, errs, "image")
			} else {
				assert.Nil(t, errs)
			}
		})
	}
}

func TestValidateMovieInput_NilCoverIsValid(t *testing.T) {
	assert.Nil(t, ValidateMovieInput(validInput(), nil))
}

func TestToEntity(t *testing.T) {
	in := validInput()
	in.Imdb = "8.657"
	in.Trailer = "https://www.youtube.com/watch?v=vKQi3bBA1y8&t=42"

	movie := in.ToEntity()

	assert.Equal(t, "The Matrix", movie.Title)
	assert.True(t, movie.Imdb.Equal(decimal.RequireFromString("8.66")), "score should be rounded to two digits, got %s", movie.Imdb)
	require.NotNil(t, movie.Trailer)
	assert.Equal(t, "https://www.youtube.com/embed/vKQi3bBA1y8", *movie.Trailer)
	require.NotNil(t, movie.Genre)
	assert.Equal(t, "Science Fiction", *movie.Genre)
}

func TestToEntity_EmptyOptionalsBecomeNil(t *testing.T) {
	in := MovieInput{Title: "Heat"}
	movie := in.ToEntity()

	assert.Nil(t, movie.Genre)
	assert.Nil(t, movie.Rating)
	assert.Nil(t, movie.Trailer)
	assert.Nil(t, movie.Description)
	assert.Nil(t, movie.Director)
	assert.True(t, movie.Imdb.IsZero())
}

func TestGenerateListCacheKey(t *testing.T) {
	a := GenerateListCacheKey(MovieFilter{Genre: "Action"})
	b := GenerateListCacheKey(MovieFilter{Genre: "Drama"})
	c := GenerateListCacheKey(MovieFilter{Genre: "Action"})

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.True(t, strings.HasPrefix(a, "movies:list:"))
}
