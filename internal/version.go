package internal

import (
	"os"
	"path/filepath"
)

// Version is the application version, set at build time via -ldflags.
var Version = "0.9.0"

// StateDir returns the directory for durable application state
// (bookmark/note database, cached study notes). Follows the XDG Base
// Directory layout under ~/.local/state.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mushaf")
	}
	return filepath.Join(home, ".local", "state", "mushaf")
}

// DownloadsDir returns the default directory for exported artifacts
// (postcards, saved recordings).
func DownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// isAlphaNumeric checks if a rune is alphanumeric
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
