// internal/app/app.go

package app

import (
	"go.uber.org/zap"

	"skraper/internal/adapter/events"
	"skraper/internal/config"
	domainscrape "skraper/internal/domain/scrape"
	"skraper/internal/logger"
	"skraper/internal/service/analytics"
	"skraper/internal/service/normalize"
	"skraper/internal/service/pipeline"
	"skraper/internal/service/platform"
	"skraper/internal/service/scrape"
)

// App holds the wired services shared by the API server and the CLI
type App struct {
	Detector  *platform.Detector
	Invoker   domainscrape.Invoker
	Bus       events.Bus
	Publisher *events.Publisher
	Pipeline  *pipeline.Pipeline
}

// New wires the scraping pipeline from configuration
func New(cfg config.Config) (*App, error) {
	bus, err := NewBus(cfg.NATS)
	if err != nil {
		return nil, err
	}

	detector := platform.NewDetector()
	invoker := NewInvoker(cfg.Scraper)
	publisher := events.NewPublisher(bus, cfg.Scraper.EventsTopic)

	p := pipeline.NewPipeline(
		detector,
		invoker,
		normalize.NewNormalizer(nil),
		analytics.NewAnalyzer(analytics.Config{
			FollowerBaseline: cfg.Analytics.FollowerBaseline,
		}),
		publisher,
	)

	return &App{
		Detector:  detector,
		Invoker:   invoker,
		Bus:       bus,
		Publisher: publisher,
		Pipeline:  p,
	}, nil
}

// Close releases the event bus
func (a *App) Close() {
	a.Bus.Close()
}

// NewInvoker builds the scraping backend named by cfg.Backend, wrapped with
// the fixture fallback when enabled
func NewInvoker(cfg config.ScraperConfig) domainscrape.Invoker {
	if cfg.Backend == config.BackendFixture {
		return scrape.NewFixtureInvoker(nil)
	}

	kind := scrape.KindYtDlp
	if cfg.Backend == config.BackendSkraper {
		kind = scrape.KindSkraper
	}
	path := cfg.Path
	if path == "" {
		path = kind
	}

	invoker := scrape.NewExecInvoker(
		scrape.ExecConfig{
			Kind:          kind,
			Path:          path,
			Timeout:       cfg.Timeout,
			MaxConcurrent: cfg.MaxConcurrent,
		},
		scrape.NewAvailabilityChecker(path, scrape.ProbeArgs(kind), cfg.AvailabilityTTL),
	)

	if !cfg.FallbackFixture {
		return invoker
	}
	return scrape.NewFallbackInvoker(invoker, scrape.NewFixtureInvoker(nil))
}

// NewBus connects to NATS when a URL is configured, else returns an
// in-process bus
func NewBus(cfg config.NATSConfig) (events.Bus, error) {
	if cfg.URL == "" {
		logger.Log.Info("NATS_URL not set, using in-process event bus")
		return events.NewMemoryBus(), nil
	}

	bus, err := events.ConnectNATS(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Connected to NATS", zap.String("url", cfg.URL))
	return bus, nil
}
