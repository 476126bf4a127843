package quran

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a requested surah or verse is absent from
// the loaded data.
var ErrNotFound = errors.New("not found")

// APIError represents a failed content API request: the endpoint
// answered with a non-success status or a body that could not be
// decoded.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("content API %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("content API %s: %s", e.Endpoint, e.Message)
}

// ValidationError reports malformed user input, such as an
// out-of-range surah or verse number. It is raised at the input
// boundary, before any fetch is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
