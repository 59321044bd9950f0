package scrape

import (
	"errors"
	"fmt"
	"net/http"
)

// Pipeline errors
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrToolUnavailable     = errors.New("scraper tool unavailable")
	ErrScrapeTimeout       = errors.New("scraping timeout - operation took too long")
	ErrScrapeFailed        = errors.New("scraping failed")
	ErrInvalidOutput       = errors.New("invalid scraper output")
	ErrEmptyBatch          = errors.New("no posts to analyze")
	ErrValidation          = errors.New("validation error")
)

// UnsupportedPlatformError is returned when a URL matches no known platform
type UnsupportedPlatformError struct {
	URL string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("Unsupported platform for URL: %s", e.URL)
}

func (e *UnsupportedPlatformError) Unwrap() error { return ErrUnsupportedPlatform }

// ScrapeFailedError carries the exit status and stderr of a failed tool run
type ScrapeFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *ScrapeFailedError) Error() string {
	return fmt.Sprintf("Scraping failed: %s", e.Stderr)
}

func (e *ScrapeFailedError) Unwrap() error { return ErrScrapeFailed }

// InvalidOutputError is returned when tool output is not valid JSON
type InvalidOutputError struct {
	Preview string
	Err     error
}

func (e *InvalidOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid JSON response format from scraper: %v", e.Err)
	}
	return "Invalid JSON response format from scraper"
}

func (e *InvalidOutputError) Unwrap() error { return ErrInvalidOutput }

// ValidationError describes a malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// HTTPStatus maps a pipeline error to the status returned to clients.
// Client-caused errors are 400, everything else is operational.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsupportedPlatform):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text shown to API clients for err. Typed errors
// already carry client-facing text; sentinels get a capitalized form.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrScrapeTimeout):
		return "Scraping timeout - operation took too long"
	case errors.Is(err, ErrToolUnavailable):
		return "Scraper tool not available"
	case errors.Is(err, ErrEmptyBatch):
		return "No posts to analyze"
	default:
		return err.Error()
	}
}
