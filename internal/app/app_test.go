package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skraper/internal/adapter/events"
	"skraper/internal/config"
	"skraper/internal/domain/scrape"
	scrapesvc "skraper/internal/service/scrape"
)

func TestNewInvoker(t *testing.T) {
	fixture := NewInvoker(config.ScraperConfig{Backend: config.BackendFixture})
	assert.Equal(t, scrapesvc.BackendFixture, fixture.Name())

	ytdlp := NewInvoker(config.ScraperConfig{Backend: config.BackendYtDlp, Timeout: time.Second, MaxConcurrent: 1})
	require.IsType(t, &scrapesvc.ExecInvoker{}, ytdlp)
	assert.Equal(t, "yt-dlp", ytdlp.(*scrapesvc.ExecInvoker).Path())

	skraper := NewInvoker(config.ScraperConfig{Backend: config.BackendSkraper, Path: "/opt/skraper"})
	require.IsType(t, &scrapesvc.ExecInvoker{}, skraper)
	assert.Equal(t, scrapesvc.KindSkraper, skraper.Name())
	assert.Equal(t, "/opt/skraper", skraper.(*scrapesvc.ExecInvoker).Path())

	withFallback := NewInvoker(config.ScraperConfig{Backend: config.BackendYtDlp, FallbackFixture: true})
	assert.IsType(t, &scrapesvc.FallbackInvoker{}, withFallback)
}

func TestNewBusWithoutNATS(t *testing.T) {
	bus, err := NewBus(config.NATSConfig{})
	require.NoError(t, err)
	defer bus.Close()
	assert.IsType(t, &events.MemoryBus{}, bus)
}

func TestNewWiresFixturePipeline(t *testing.T) {
	a, err := New(config.Config{
		Scraper:   config.ScraperConfig{Backend: config.BackendFixture, EventsTopic: "scrape"},
		Analytics: config.AnalyticsConfig{FollowerBaseline: 10000},
	})
	require.NoError(t, err)
	defer a.Close()

	var received int
	_, err = a.Bus.Subscribe(a.Publisher.Wildcard(), func([]byte) { received++ })
	require.NoError(t, err)

	resp, err := a.Pipeline.Scrape(context.Background(), scrape.Request{URL: "https://instagram.com/brandname", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, received)
}
