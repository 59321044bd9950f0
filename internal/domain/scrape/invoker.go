// internal/domain/scrape/invoker.go

package scrape

import (
	"context"
)

// Invoker defines a backend able to fetch raw scraper output for a target
type Invoker interface {
	// Name returns the backend name reported as scraping_method
	Name() string

	// Available reports whether the backend can currently serve requests
	Available(ctx context.Context) bool

	// Invoke fetches raw output for the target
	Invoke(ctx context.Context, target Target, opts Options) (*RawOutput, error)
}

// Detector maps URLs to platforms
type Detector interface {
	// Detect returns the platform for a URL, false when unsupported
	Detect(url string) (string, bool)

	// ExtractPath returns the backend path for a URL on a platform
	ExtractPath(url, platform string) string

	// Supported lists every known platform in detection order
	Supported() []string
}

// EventPublisher receives scrape lifecycle events
type EventPublisher interface {
	PublishCompleted(ctx context.Context, event Event) error
	PublishFailed(ctx context.Context, event Event) error
}

// Event describes the outcome of one pipeline run
type Event struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Platform   string `json:"platform,omitempty"`
	Backend    string `json:"backend,omitempty"`
	Posts      int    `json:"posts"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	Time       string `json:"time"`
}
