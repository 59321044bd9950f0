// internal/server/handlers/meta.go

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"skraper/internal/domain/scrape"
)

// API descriptor values
const (
	apiName    = "Skraper Web API - Enhanced for AI Agents"
	apiVersion = "2.0.0"
)

// fallbackReporter is implemented by invokers that can switch to a secondary
// backend while the primary tool is missing
type fallbackReporter interface {
	FallbackName() string
	FallbackAvailable(ctx context.Context) bool
}

// MetaHandler serves the descriptor, health and status endpoints
type MetaHandler struct {
	detector scrape.Detector
	invoker  scrape.Invoker
	now      func() time.Time
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(detector scrape.Detector, invoker scrape.Invoker) *MetaHandler {
	return &MetaHandler{
		detector: detector,
		invoker:  invoker,
		now:      time.Now,
	}
}

// Index describes the API
func (h *MetaHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"name":        apiName,
		"version":     apiVersion,
		"description": "Web API for social media scraping with brand analysis for AI agents",
		"features": []string{
			"Brand voice analysis",
			"Engagement pattern recognition",
			"Content theme identification",
			"AI agent recommendations",
			"Sentiment analysis",
		},
		"endpoints": map[string]string{
			"GET /health":                       "Health check",
			"GET /api/platforms":                "Get supported platforms",
			"GET /api/scrape/status":            "Check scraping service status",
			"POST /api/scrape":                  "Scrape social media data",
			"POST /api/scrape/enhanced":         "Enhanced scraping with AI analysis",
			"POST /api/ai-agent/brand-analysis": "Brand analysis for AI agents",
			"GET /ws/scrapes":                   "Live feed of scrape events",
			"GET /metrics":                      "Prometheus metrics",
		},
	})
}

// Health reports liveness and whether the scraping tool can be run
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":            "healthy",
		"timestamp":         h.timestamp(),
		h.availabilityKey(): h.invoker.Available(r.Context()),
		"enhanced_features": true,
	}
	h.addFallback(r.Context(), body)
	respondWithJSON(w, http.StatusOK, body)
}

// Platforms lists the supported platforms in detection order
func (h *MetaHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	platforms := h.detector.Supported()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"platforms": platforms,
		"count":     len(platforms),
		"note":      "Enhanced analysis available for all platforms",
	})
}

// Status reports the scraping backend state
func (h *MetaHandler) Status(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		h.availabilityKey():   h.invoker.Available(r.Context()),
		"scraping_method":     h.invoker.Name(),
		"enhanced_features":   true,
		"supported_platforms": len(h.detector.Supported()),
		"timestamp":           h.timestamp(),
	}
	h.addFallback(r.Context(), body)
	respondWithJSON(w, http.StatusOK, body)
}

// availabilityKey is "<tool>_available", e.g. yt_dlp_available
func (h *MetaHandler) availabilityKey() string {
	return strings.ReplaceAll(h.invoker.Name(), "-", "_") + "_available"
}

// addFallback reports the secondary backend separately from the primary tool
func (h *MetaHandler) addFallback(ctx context.Context, body map[string]interface{}) {
	f, ok := h.invoker.(fallbackReporter)
	if !ok {
		return
	}
	body["fallback_method"] = f.FallbackName()
	body["fallback_available"] = f.FallbackAvailable(ctx)
}

func (h *MetaHandler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
