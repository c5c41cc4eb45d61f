package utils

import (
	"os"
	"strings"
)

// GetEnvVariable reads an environment variable with a fallback default.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// SanitizeTitle strips spaces from a movie title so it can be used as the
// cover file slot: "The Matrix" -> "TheMatrix".
func SanitizeTitle(title string) string {
	return strings.ReplaceAll(title, " ", "")
}
