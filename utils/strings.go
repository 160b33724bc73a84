package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// NormalizeName trims a pilgrim name and collapses inner whitespace
func NormalizeName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
}

// FormatNameForDisplay converts a name to title case word by word
func FormatNameForDisplay(name string) string {
	name = NormalizeName(name)
	if name == "" {
		return ""
	}

	// Casers keep state, so each call gets its own
	return cases.Title(language.Und).String(name)
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	// Replace invalid characters with underscore
	cleaned := invalidFileChars.ReplaceAllString(filename, "_")

	// Remove extra spaces and trim
	cleaned = strings.TrimSpace(cleaned)
	cleaned = whitespaceRun.ReplaceAllString(cleaned, "_")

	return cleaned
}
