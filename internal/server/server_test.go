package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skraper/internal/adapter/events"
	"skraper/internal/config"
	"skraper/internal/domain/scrape"
	"skraper/internal/service/analytics"
	"skraper/internal/service/normalize"
	"skraper/internal/service/pipeline"
	"skraper/internal/service/platform"
	scrapesvc "skraper/internal/service/scrape"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         5000,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		CorsOrigins:  config.DefaultCorsOrigins,
	}
}

func newTestServer(t *testing.T, invoker scrape.Invoker) (*Server, events.Bus) {
	t.Helper()
	clock := func() time.Time { return testNow }
	detector := platform.NewDetector()
	bus := events.NewMemoryBus()
	t.Cleanup(bus.Close)
	publisher := events.NewPublisher(bus, "scrape")

	p := pipeline.NewPipeline(
		detector,
		invoker,
		normalize.NewNormalizer(clock),
		analytics.NewAnalyzer(analytics.Config{}),
		publisher,
	)

	return NewServer(testServerConfig(), Dependencies{
		Scraper:       p,
		Detector:      detector,
		Invoker:       invoker,
		Bus:           bus,
		EventsSubject: publisher.Wildcard(),
	}), bus
}

func fixtureServer(t *testing.T) *Server {
	s, _ := newTestServer(t, scrapesvc.NewFixtureInvoker(func() time.Time { return testNow }))
	return s
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	var decoded map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}

func TestScrapeRejectsMissingBody(t *testing.T) {
	s := fixtureServer(t)

	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"empty object", `{}`, "No JSON data provided"},
		{"no body", "", "No JSON data provided"},
		{"not json", `url=https://instagram.com/x`, "No JSON data provided"},
		{"array", `[1,2]`, "No JSON data provided"},
		{"missing url", `{"limit": 5}`, "URL is required"},
		{"blank url", `{"url": "  "}`, "URL is required"},
		{"bad limit", `{"url": "https://instagram.com/x", "limit": "lots"}`, "limit must be a number"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, s, http.MethodPost, "/api/scrape", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.message, body["error"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestScrapeWithFixture(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://instagram.com/brandname", "limit": "3"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "instagram", meta["platform"])
	assert.Equal(t, "fixture", meta["scraping_method"])
	assert.Equal(t, float64(3), meta["total_posts"])
	assert.Equal(t, float64(3), meta["limit"])
	assert.Len(t, body["data"], 3)

	stats := body["statistics"].(map[string]any)
	assert.Equal(t, float64(3), stats["total_posts"])
}

func TestScrapeClampsLimit(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://x.com/brand", "limit": 0}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), body["metadata"].(map[string]any)["limit"])

	rr, body = do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://x.com/brand", "limit": 1000}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(100), body["metadata"].(map[string]any)["limit"])
}

func TestScrapeUnsupportedPlatform(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://example.com/brand"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Unsupported platform for URL: https://example.com/brand", body["error"])
	assert.Equal(t, false, body["success"])
}

func TestScrapeToolFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-skraper")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho 'rate limited' >&2\nexit 1\n"), 0o755))

	invoker := scrapesvc.NewExecInvoker(scrapesvc.ExecConfig{
		Kind:          scrapesvc.KindSkraper,
		Path:          path,
		Timeout:       5 * time.Second,
		MaxConcurrent: 1,
	}, nil)
	s, _ := newTestServer(t, invoker)

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://instagram.com/brandname"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, body["error"], "rate limited")
	assert.Equal(t, false, body["success"])
}

func TestScrapeEnhancedAndBrandAnalysis(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodPost, "/api/scrape/enhanced", `{"url": "https://www.tiktok.com/@creator", "limit": 6}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, body, "brand_analysis")
	assert.Contains(t, body, "ai_agent_recommendations")
	assert.Len(t, body["posts"], 6)

	rr, body = do(t, s, http.MethodPost, "/api/ai-agent/brand-analysis", `{"url": "https://www.tiktok.com/@creator", "limit": 6}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	profile := body["brand_profile"].(map[string]any)
	assert.Equal(t, "tiktok", profile["platform"])
	assert.Equal(t, "creator", profile["username"])
	assert.Equal(t, float64(6), profile["total_posts_analyzed"])
	assert.Len(t, body["sample_posts"], 5)
}

func TestMetaEndpoints(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["fixture_available"])
	assert.Equal(t, true, body["enhanced_features"])
	assert.NotContains(t, body, "fallback_available")

	rr, body = do(t, s, http.MethodGet, "/api/platforms", "")
	require.Equal(t, http.StatusOK, rr.Code)
	platforms := body["platforms"].([]any)
	assert.Equal(t, "instagram", platforms[0])
	assert.Equal(t, float64(len(platforms)), body["count"])

	rr, body = do(t, s, http.MethodGet, "/api/scrape/status", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fixture", body["scraping_method"])

	rr, body = do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "endpoints")
}

func TestMetaReportsMissingToolBehindFallback(t *testing.T) {
	primary := scrapesvc.NewExecInvoker(scrapesvc.ExecConfig{
		Kind:          scrapesvc.KindYtDlp,
		Path:          filepath.Join(t.TempDir(), "missing-yt-dlp"),
		Timeout:       time.Second,
		MaxConcurrent: 1,
	}, nil)
	invoker := scrapesvc.NewFallbackInvoker(primary, scrapesvc.NewFixtureInvoker(func() time.Time { return testNow }))
	s, _ := newTestServer(t, invoker)

	for _, path := range []string{"/health", "/api/scrape/status"} {
		rr, body := do(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, false, body["yt_dlp_available"], path)
		assert.Equal(t, true, body["fallback_available"], path)
		assert.Equal(t, "fixture", body["fallback_method"], path)
	}

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://instagram.com/brandname", "limit": 2}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "fixture", body["metadata"].(map[string]any)["scraping_method"])
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	s := fixtureServer(t)

	rr, body := do(t, s, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Endpoint not found", body["error"])

	rr, _ = do(t, s, http.MethodGet, "/api/scrape/enhanced", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := fixtureServer(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/scrape", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		return rr
	}

	allowed := preflight("http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header().Get("Access-Control-Allow-Credentials"))

	denied := preflight("https://evil.example")
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

type panickingService struct{}

func (panickingService) Scrape(ctx context.Context, req scrape.Request) (*pipeline.ScrapeResponse, error) {
	panic("boom")
}

func (panickingService) ScrapeEnhanced(ctx context.Context, req scrape.Request) (*pipeline.EnhancedResponse, error) {
	panic("boom")
}

func (panickingService) BrandAnalysis(ctx context.Context, req scrape.Request) (*pipeline.BrandAnalysisResponse, error) {
	panic("boom")
}

func TestPanicsBecomeInternalServerError(t *testing.T) {
	s := NewServer(testServerConfig(), Dependencies{
		Scraper:  panickingService{},
		Detector: platform.NewDetector(),
		Invoker:  scrapesvc.NewFixtureInvoker(nil),
	})

	rr, body := do(t, s, http.MethodPost, "/api/scrape", `{"url": "https://instagram.com/brandname"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := fixtureServer(t)
	do(t, s, http.MethodGet, "/health", "")

	rr, _ := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
	assert.Contains(t, rr.Body.String(), `path="/health"`)
}

func TestScrapeEventsWebSocket(t *testing.T) {
	s := fixtureServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/scrapes"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome map[string]any
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "welcome", welcome["type"])

	resp, err := http.Post(ts.URL+"/api/scrape", "application/json",
		strings.NewReader(`{"url": "https://instagram.com/brandname", "limit": 2}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var event scrape.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.TypeCompleted, event.Type)
	assert.Equal(t, "instagram", event.Platform)
	assert.Equal(t, 2, event.Posts)
}

func TestWebSocketRejectsUnknownOrigin(t *testing.T) {
	s := fixtureServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/scrapes"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
