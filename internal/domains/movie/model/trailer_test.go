package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTrailer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "watch link becomes embed link",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "extra query parameters are dropped",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30s&list=PL123",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "embed link passes through",
			raw:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "non-youtube url passes through",
			raw:  "https://vimeo.com/123456",
			want: "https://vimeo.com/123456",
		},
		{
			name: "non-youtube url still truncated at ampersand",
			raw:  "https://vimeo.com/123456?a=1&b=2",
			want: "https://vimeo.com/123456?a=1",
		},
		{
			name: "empty input stays empty",
			raw:  "",
			want: "",
		},
		{
			name: "ampersand at position zero yields empty string",
			raw:  "&t=30s",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTrailer(tt.raw))
		})
	}
}
