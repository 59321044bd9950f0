package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Scrape backend metrics
	ScrapeInvocationsTotal *prometheus.CounterVec
	ScrapeDuration         *prometheus.HistogramVec
	ScrapesInFlight        *prometheus.GaugeVec
	ToolAvailable          *prometheus.GaugeVec

	// Pipeline metrics
	PostsNormalizedTotal *prometheus.CounterVec
	EventsPublishedTotal *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15, 60, 180, 300},
				},
				[]string{"method", "path", "status"},
			),
			ScrapeInvocationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "scrape_invocations_total",
					Help: "Scraper backend invocations by outcome",
				},
				[]string{"backend", "outcome"},
			),
			ScrapeDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "scrape_duration_seconds",
					Help:    "Wall-clock duration of scraper backend invocations",
					Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
				},
				[]string{"backend"},
			),
			ScrapesInFlight: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "scrapes_in_flight",
					Help: "Scraper processes currently running",
				},
				[]string{"backend"},
			),
			ToolAvailable: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "scraper_tool_available",
					Help: "1 when the scraper tool answered its last availability probe",
				},
				[]string{"tool"},
			),
			PostsNormalizedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "posts_normalized_total",
					Help: "Posts normalized into the canonical schema",
				},
				[]string{"platform"},
			),
			EventsPublishedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "scrape_events_published_total",
					Help: "Scrape lifecycle events published by type and outcome",
				},
				[]string{"type", "outcome"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing it on first use
func Get() *Metrics {
	return Initialize()
}

// Outcome labels
const (
	OutcomeSuccess     = "success"
	OutcomeFailed      = "failed"
	OutcomeTimeout     = "timeout"
	OutcomeUnavailable = "unavailable"
	OutcomeInvalid     = "invalid_output"
)
