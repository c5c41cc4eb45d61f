package model

import "strings"

const (
	watchPrefix = "https://www.youtube.com/watch?v="
	embedPrefix = "https://www.youtube.com/embed/"
)

// NormalizeTrailer rewrites a YouTube watch link into its embeddable form
// and drops everything from the first '&' on, so extra query parameters
// (timestamps, playlists) never leak into the embed URL.
//
// A URL without '&' is used as-is, and an empty input stays empty. The
// result can legitimately be "" when '&' is the first character; that is a
// benign outcome, not an error.
func NormalizeTrailer(raw string) string {
	if raw == "" {
		return ""
	}

	url := strings.ReplaceAll(raw, watchPrefix, embedPrefix)
	if i := strings.IndexByte(url, '&'); i >= 0 {
		url = url[:i]
	}
	return url
}
