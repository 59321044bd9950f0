package scrape

import (
	"time"
)

// Content types accepted by the scrape endpoints
const (
	ContentPosts     = "posts"
	ContentMediaOnly = "media-only"
)

// Media types carried by a canonical post
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaCarousel = "carousel"
)

// Limits applied to a scrape request
const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 100
)

// Target identifies what a backend should fetch
type Target struct {
	URL      string
	Platform string
	Path     string
}

// Options controls a single backend invocation
type Options struct {
	Limit        int
	ContentType  string
	OutputFormat string
}

// ExpectsListing reports whether every output record should be kept
func (o Options) ExpectsListing() bool {
	return o.Limit != 1
}

// RawOutput is the decoded, not yet normalized, output of a backend
type RawOutput struct {
	Backend string
	Data    any
	Records int
	Elapsed time.Duration
}

// Sentiment is the keyword based sentiment of a post
type Sentiment struct {
	Label    string `json:"sentiment"`
	Positive int    `json:"positive_score"`
	Negative int    `json:"negative_score"`
	Strength int    `json:"sentiment_strength"`
}

// CallToAction describes call-to-action phrases found in a post
type CallToAction struct {
	HasCTA   bool     `json:"has_cta"`
	Types    []string `json:"cta_types"`
	Strength int      `json:"cta_strength"`
}

// Post is the canonical representation of one scraped item, independent of
// the platform or backend it came from.
type Post struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Content      string       `json:"content"`
	Timestamp    string       `json:"timestamp"`
	Likes        int          `json:"likes"`
	Comments     int          `json:"comments"`
	Shares       int          `json:"shares"`
	MediaURL     string       `json:"media_url"`
	Caption      string       `json:"caption"`
	Hashtags     []string     `json:"hashtags"`
	Mentions     []string     `json:"mentions"`
	MediaType    string       `json:"media_type"`
	ViewCount    int          `json:"view_count"`
	Duration     float64      `json:"duration"`
	PostLength   int          `json:"post_length"`
	EmojiCount   int          `json:"emoji_count"`
	CallToAction CallToAction `json:"call_to_action"`
	Sentiment    Sentiment    `json:"sentiment"`
}

// Engagement is likes + comments + shares
func (p Post) Engagement() int {
	return p.Likes + p.Comments + p.Shares
}

// Request is a validated scrape request
type Request struct {
	URL          string
	ContentType  string
	Limit        int
	OutputFormat string
}

// ClampLimit bounds a requested limit to the accepted range
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
