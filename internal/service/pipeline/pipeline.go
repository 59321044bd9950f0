// internal/service/pipeline/pipeline.go

package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skraper/internal/domain/scrape"
	"skraper/internal/logger"
	"skraper/internal/metrics"
	"skraper/internal/service/analytics"
	"skraper/internal/service/normalize"
	"skraper/internal/service/recommend"
)

const samplePosts = 5

// Pipeline runs detect, invoke, normalize, analyze and recommend for one
// request. It keeps no state between requests.
type Pipeline struct {
	detector   scrape.Detector
	invoker    scrape.Invoker
	normalizer *normalize.Normalizer
	analyzer   *analytics.Analyzer
	events     scrape.EventPublisher
	now        func() time.Time
	newID      func() string
}

// NewPipeline creates a new pipeline. events may be nil.
func NewPipeline(
	detector scrape.Detector,
	invoker scrape.Invoker,
	normalizer *normalize.Normalizer,
	analyzer *analytics.Analyzer,
	events scrape.EventPublisher,
) *Pipeline {
	return &Pipeline{
		detector:   detector,
		invoker:    invoker,
		normalizer: normalizer,
		analyzer:   analyzer,
		events:     events,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// Invoker returns the scraping backend
func (p *Pipeline) Invoker() scrape.Invoker {
	return p.invoker
}

// Detector returns the platform detector
func (p *Pipeline) Detector() scrape.Detector {
	return p.detector
}

// run is the shared part of every endpoint
type run struct {
	meta  Metadata
	posts []scrape.Post
	start time.Time
}

// Scrape fetches and normalizes posts and returns basic statistics
func (p *Pipeline) Scrape(ctx context.Context, req scrape.Request) (*ScrapeResponse, error) {
	r, err := p.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &ScrapeResponse{
		Metadata:   r.meta,
		Data:       r.posts,
		Statistics: analytics.Statistics(r.posts),
	}
	p.completed(ctx, r)
	return resp, nil
}

// ScrapeEnhanced fetches posts and adds brand analytics and recommendations
func (p *Pipeline) ScrapeEnhanced(ctx context.Context, req scrape.Request) (*EnhancedResponse, error) {
	r, err := p.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := p.analyzer.Analyze(r.posts)
	if err != nil {
		p.failed(ctx, r.meta, r.start, err)
		return nil, err
	}

	resp := &EnhancedResponse{
		Metadata:        r.meta,
		Posts:           r.posts,
		BrandAnalysis:   *result,
		Recommendations: recommend.Recommend(r.posts, result.Voice, result.Engagement),
	}
	p.completed(ctx, r)
	return resp, nil
}

// BrandAnalysis returns the agent oriented subset of ScrapeEnhanced
func (p *Pipeline) BrandAnalysis(ctx context.Context, req scrape.Request) (*BrandAnalysisResponse, error) {
	enhanced, err := p.ScrapeEnhanced(ctx, req)
	if err != nil {
		return nil, err
	}

	username := "unknown"
	if len(enhanced.Posts) > 0 {
		username = enhanced.Posts[0].Username
	}
	sample := enhanced.Posts
	if len(sample) > samplePosts {
		sample = sample[:samplePosts]
	}

	return &BrandAnalysisResponse{
		BrandProfile: BrandProfile{
			Platform:           enhanced.Metadata.Platform,
			Username:           username,
			TotalPostsAnalyzed: len(enhanced.Posts),
		},
		ContentStrategy:    enhanced.BrandAnalysis.Voice,
		EngagementInsights: enhanced.BrandAnalysis.Engagement,
		ContentThemes:      enhanced.BrandAnalysis.Themes,
		AIRecommendations:  enhanced.Recommendations,
		SamplePosts:        sample,
	}, nil
}

// fetch validates the request, detects the platform, invokes the backend and
// normalizes its output
func (p *Pipeline) fetch(ctx context.Context, req scrape.Request) (*run, error) {
	start := p.now()
	req = withDefaults(req)

	meta := Metadata{
		RequestID:    p.newID(),
		URL:          req.URL,
		ContentType:  req.ContentType,
		OutputFormat: req.OutputFormat,
		Limit:        req.Limit,
	}

	if req.URL == "" {
		return nil, scrape.NewValidationError("url", "URL is required")
	}

	platformName, ok := p.detector.Detect(req.URL)
	if !ok {
		err := &scrape.UnsupportedPlatformError{URL: req.URL}
		p.failed(ctx, meta, start, err)
		return nil, err
	}
	meta.Platform = platformName

	target := scrape.Target{
		URL:      req.URL,
		Platform: platformName,
		Path:     p.detector.ExtractPath(req.URL, platformName),
	}
	opts := scrape.Options{
		Limit:        req.Limit,
		ContentType:  req.ContentType,
		OutputFormat: req.OutputFormat,
	}

	raw, err := p.invoker.Invoke(ctx, target, opts)
	if err != nil {
		p.failed(ctx, meta, start, err)
		return nil, err
	}

	posts := analytics.AnnotateAll(p.normalizer.NormalizeBatch(raw.Data, req.Limit))
	metrics.Get().PostsNormalizedTotal.WithLabelValues(platformName).Add(float64(len(posts)))

	meta.ScrapedAt = p.now().UTC().Format(time.RFC3339)
	meta.TotalPosts = len(posts)
	meta.ScrapingMethod = raw.Backend

	logger.Log.Info("Scrape completed",
		logger.WithRequestID(meta.RequestID),
		logger.WithURL(req.URL),
		logger.WithPlatform(platformName),
		logger.WithBackend(raw.Backend),
		zap.Int("posts", len(posts)),
	)

	return &run{meta: meta, posts: posts, start: start}, nil
}

func withDefaults(req scrape.Request) scrape.Request {
	req.URL = strings.TrimSpace(req.URL)
	if req.ContentType == "" {
		req.ContentType = scrape.ContentPosts
	}
	if req.OutputFormat == "" {
		req.OutputFormat = "json"
	}
	if req.Limit == 0 {
		req.Limit = scrape.DefaultLimit
	}
	req.Limit = scrape.ClampLimit(req.Limit)
	return req
}

func (p *Pipeline) completed(ctx context.Context, r *run) {
	if p.events == nil {
		return
	}
	ev := p.event(r.meta, r.start)
	ev.Posts = len(r.posts)
	if err := p.events.PublishCompleted(context.WithoutCancel(ctx), ev); err != nil {
		logger.Log.Warn("Failed to publish scrape event", logger.WithRequestID(r.meta.RequestID), zap.Error(err))
	}
}

func (p *Pipeline) failed(ctx context.Context, meta Metadata, start time.Time, cause error) {
	logger.Log.Warn("Scrape failed",
		logger.WithRequestID(meta.RequestID),
		logger.WithURL(meta.URL),
		zap.Error(cause),
	)
	if p.events == nil {
		return
	}
	ev := p.event(meta, start)
	ev.Error = cause.Error()
	if err := p.events.PublishFailed(context.WithoutCancel(ctx), ev); err != nil {
		logger.Log.Warn("Failed to publish scrape event", logger.WithRequestID(meta.RequestID), zap.Error(err))
	}
}

func (p *Pipeline) event(meta Metadata, start time.Time) scrape.Event {
	now := p.now()
	return scrape.Event{
		ID:         meta.RequestID,
		URL:        meta.URL,
		Platform:   meta.Platform,
		Backend:    meta.ScrapingMethod,
		DurationMS: now.Sub(start).Milliseconds(),
		Time:       now.UTC().Format(time.RFC3339),
	}
}
