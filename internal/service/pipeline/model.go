package pipeline

import (
	"skraper/internal/domain/analysis"
	"skraper/internal/domain/scrape"
)

// Metadata describes one pipeline run
type Metadata struct {
	RequestID      string `json:"request_id"`
	URL            string `json:"url"`
	Platform       string `json:"platform"`
	ScrapedAt      string `json:"scraped_at"`
	ContentType    string `json:"content_type"`
	OutputFormat   string `json:"output_format"`
	Limit          int    `json:"limit"`
	TotalPosts     int    `json:"total_posts"`
	ScrapingMethod string `json:"scraping_method"`
}

// ScrapeResponse is returned by the basic scrape endpoint
type ScrapeResponse struct {
	Metadata   Metadata            `json:"metadata"`
	Data       []scrape.Post       `json:"data"`
	Statistics analysis.Statistics `json:"statistics"`
}

// EnhancedResponse adds brand analytics and recommendations to the posts
type EnhancedResponse struct {
	Metadata        Metadata                 `json:"metadata"`
	Posts           []scrape.Post            `json:"posts"`
	BrandAnalysis   analysis.Result          `json:"brand_analysis"`
	Recommendations analysis.Recommendations `json:"ai_agent_recommendations"`
}

// BrandProfile identifies the analyzed account
type BrandProfile struct {
	Platform           string `json:"platform"`
	Username           string `json:"username"`
	TotalPostsAnalyzed int    `json:"total_posts_analyzed"`
}

// BrandAnalysisResponse is the curated view consumed by agents
type BrandAnalysisResponse struct {
	BrandProfile       BrandProfile             `json:"brand_profile"`
	ContentStrategy    analysis.Voice           `json:"content_strategy"`
	EngagementInsights analysis.Engagement      `json:"engagement_insights"`
	ContentThemes      analysis.Themes          `json:"content_themes"`
	AIRecommendations  analysis.Recommendations `json:"ai_recommendations"`
	SamplePosts        []scrape.Post            `json:"sample_posts"`
}
