// internal/server/handlers/scrape.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"skraper/internal/domain/scrape"
	"skraper/internal/service/pipeline"
)

const maxBodyBytes = 1 << 20

var errNoJSON = errors.New("No JSON data provided")

// ScrapeService runs scrape requests end to end
type ScrapeService interface {
	Scrape(ctx context.Context, req scrape.Request) (*pipeline.ScrapeResponse, error)
	ScrapeEnhanced(ctx context.Context, req scrape.Request) (*pipeline.EnhancedResponse, error)
	BrandAnalysis(ctx context.Context, req scrape.Request) (*pipeline.BrandAnalysisResponse, error)
}

// ScrapeHandler handles the scraping endpoints
type ScrapeHandler struct {
	service ScrapeService
}

// NewScrapeHandler creates a new scrape handler
func NewScrapeHandler(service ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{
		service: service,
	}
}

// Scrape returns normalized posts with basic statistics
func (h *ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Scrape(r.Context(), req)
	if err != nil {
		respondWithFailure(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// ScrapeEnhanced returns posts with brand analysis and recommendations
func (h *ScrapeHandler) ScrapeEnhanced(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ScrapeEnhanced(r.Context(), req)
	if err != nil {
		respondWithFailure(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// BrandAnalysis returns the agent oriented brand summary
func (h *ScrapeHandler) BrandAnalysis(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScrapeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.BrandAnalysis(r.Context(), req)
	if err != nil {
		respondWithFailure(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// scrapeBody is the request body shared by the scrape endpoints
type scrapeBody struct {
	URL          string     `json:"url"`
	ContentType  string     `json:"content_type"`
	Limit        *flexLimit `json:"limit"`
	OutputFormat string     `json:"output_format"`
}

// flexLimit accepts a JSON number or a numeric string. Fractions truncate.
type flexLimit int

func (l *flexLimit) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("limit must be a number")
		}
		n = json.Number(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("limit must be a number")
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	*l = flexLimit(int(f))
	return nil
}

// decodeScrapeRequest parses the body and writes the 400 response itself when
// it is unusable
func decodeScrapeRequest(w http.ResponseWriter, r *http.Request) (scrape.Request, bool) {
	req, err := parseScrapeBody(r.Body)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   err.Error(),
			"success": false,
		})
		return scrape.Request{}, false
	}
	return req, true
}

func parseScrapeBody(body io.Reader) (scrape.Request, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return scrape.Request{}, errNoJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return scrape.Request{}, errNoJSON
	}

	var b scrapeBody
	if err := json.Unmarshal(data, &b); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return scrape.Request{}, scrape.NewValidationError(typeErr.Field, fmt.Sprintf("Invalid value for %s", typeErr.Field))
		}
		return scrape.Request{}, scrape.NewValidationError("body", err.Error())
	}

	b.URL = strings.TrimSpace(b.URL)
	if b.URL == "" {
		return scrape.Request{}, scrape.NewValidationError("url", "URL is required")
	}

	limit := scrape.DefaultLimit
	if b.Limit != nil {
		limit = scrape.ClampLimit(int(*b.Limit))
	}

	return scrape.Request{
		URL:          b.URL,
		ContentType:  b.ContentType,
		Limit:        limit,
		OutputFormat: b.OutputFormat,
	}, nil
}
