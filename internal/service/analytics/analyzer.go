// internal/service/analytics/analyzer.go

package analytics

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"skraper/internal/domain/analysis"
	"skraper/internal/domain/scrape"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// DefaultFollowerBaseline is the audience size assumed by the engagement rate
const DefaultFollowerBaseline = 10000.0

// Config contains configuration for the analyzer
type Config struct {
	FollowerBaseline float64
}

// Analyzer derives brand analytics from a batch of annotated posts. It keeps
// no state between calls.
type Analyzer struct {
	baseline float64
}

// NewAnalyzer creates a new analyzer. A non-positive or non-finite baseline
// falls back to DefaultFollowerBaseline.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.FollowerBaseline <= 0 || math.IsNaN(cfg.FollowerBaseline) || math.IsInf(cfg.FollowerBaseline, 0) {
		cfg.FollowerBaseline = DefaultFollowerBaseline
	}
	return &Analyzer{baseline: cfg.FollowerBaseline}
}

// Analyze computes voice, engagement, theme and performance metrics. Posts are
// read in order; ties are broken by first appearance.
func (a *Analyzer) Analyze(posts []scrape.Post) (*analysis.Result, error) {
	if len(posts) == 0 {
		return nil, scrape.ErrEmptyBatch
	}

	return &analysis.Result{
		Voice:       Voice(posts),
		Engagement:  a.Engagement(posts),
		Themes:      Themes(posts),
		Performance: Performance(posts),
	}, nil
}

// Voice summarizes tone across posts. posts must not be empty.
func Voice(posts []scrape.Post) analysis.Voice {
	n := float64(len(posts))

	var length, emoji, cta int
	dist := map[string]int{}
	var order []string
	for _, p := range posts {
		length += utf8.RuneCountInString(p.Content)
		emoji += p.EmojiCount
		if p.CallToAction.HasCTA {
			cta++
		}
		label := p.Sentiment.Label
		if label == "" {
			label = SentimentNeutral
		}
		if _, seen := dist[label]; !seen {
			order = append(order, label)
		}
		dist[label]++
	}

	primary := order[0]
	for _, label := range order[1:] {
		if dist[label] > dist[primary] {
			primary = label
		}
	}

	avgLength := float64(length) / n
	avgEmoji := float64(emoji) / n
	ctaFreq := float64(cta) / n

	return analysis.Voice{
		AverageCaptionLength:  round(avgLength, 1),
		AverageEmojiCount:     round(avgEmoji, 2),
		CTAFrequency:          round(ctaFreq, 2),
		SentimentDistribution: dist,
		PrimarySentiment:      primary,
		ToneIndicators: analysis.ToneIndicators{
			Professional: avgLength > professionalAt,
			Casual:       avgEmoji > casualAt,
			Engaging:     ctaFreq > engagingAt,
			Positive:     float64(dist[SentimentPositive]) > n*positiveShare,
		},
	}
}

// Engagement summarizes likes, comments and shares. posts must not be empty.
func (a *Analyzer) Engagement(posts []scrape.Post) analysis.Engagement {
	n := float64(len(posts))

	var likes, comments, shares int
	best, worst := posts[0], posts[0]
	for _, p := range posts {
		likes += p.Likes
		comments += p.Comments
		shares += p.Shares
		if p.Engagement() > best.Engagement() {
			best = p
		}
		if p.Engagement() < worst.Engagement() {
			worst = p
		}
	}

	total := float64(likes + comments + shares)
	return analysis.Engagement{
		TotalEngagement: analysis.Totals{
			Likes:    float64(likes),
			Comments: float64(comments),
			Shares:   float64(shares),
		},
		AverageEngagement: analysis.Totals{
			Likes:    round(float64(likes)/n, 1),
			Comments: round(float64(comments)/n, 1),
			Shares:   round(float64(shares)/n, 1),
		},
		EngagementRate: round(total/n/a.baseline, 4),
		BestPost:       ref(best),
		WorstPost:      ref(worst),
	}
}

// Themes reports word and hashtag frequencies, media mix and content themes.
// posts must not be empty.
func Themes(posts []scrape.Post) analysis.Themes {
	words := newCounter()
	hashtags := newCounter()
	media := map[string]int{}
	var hashtagTotal int

	for _, p := range posts {
		for _, w := range wordPattern.FindAllString(strings.ToLower(p.Content), -1) {
			words.add(w)
		}
		for _, h := range p.Hashtags {
			hashtags.add(h)
		}
		hashtagTotal += len(p.Hashtags)
		mt := p.MediaType
		if mt == "" {
			mt = scrape.MediaImage
		}
		media[mt]++
	}

	var branded, trending int
	for _, h := range hashtags.keys {
		if strings.Contains(strings.ToLower(h), "brand") {
			branded++
		}
		if utf8.RuneCountInString(h) > 10 {
			trending++
		}
	}

	return analysis.Themes{
		MostCommonWords:       words.top(topN),
		MostUsedHashtags:      hashtags.top(topN),
		MediaTypeDistribution: media,
		ContentThemes:         detectThemes(words.keys),
		HashtagStrategy: analysis.HashtagStrategy{
			BrandedHashtags:        branded,
			TrendingHashtags:       trending,
			AverageHashtagsPerPost: round(float64(hashtagTotal)/float64(len(posts)), 2),
		},
	}
}

// Performance returns overall totals. posts must not be empty.
func Performance(posts []scrape.Post) analysis.Performance {
	var perf analysis.Performance
	for _, p := range posts {
		perf.TotalLikes += p.Likes
		perf.TotalComments += p.Comments
		perf.TotalShares += p.Shares
	}
	total := perf.TotalLikes + perf.TotalComments + perf.TotalShares
	perf.AverageEngagementPerPost = round(float64(total)/float64(len(posts)), 2)
	return perf
}

// Statistics returns the basic totals of a batch, which may be empty
func Statistics(posts []scrape.Post) analysis.Statistics {
	stats := analysis.Statistics{TotalPosts: len(posts)}
	for _, p := range posts {
		if p.MediaURL != "" {
			stats.MediaItems++
		}
		stats.EngagementMetrics.TotalLikes += p.Likes
		stats.EngagementMetrics.TotalComments += p.Comments
		stats.EngagementMetrics.TotalShares += p.Shares
	}
	return stats
}

// detectThemes tags a theme when any counted word contains one of its keywords
func detectThemes(words []string) []string {
	found := []string{}
	for _, t := range themes {
		if anyContains(words, t.keywords) {
			found = append(found, t.name)
		}
	}
	return found
}

func anyContains(words, keywords []string) bool {
	for _, w := range words {
		for _, kw := range keywords {
			if strings.Contains(w, kw) {
				return true
			}
		}
	}
	return false
}

func ref(p scrape.Post) analysis.PostRef {
	return analysis.PostRef{
		ID:             p.ID,
		Engagement:     p.Engagement(),
		ContentPreview: Preview(p.Content),
		MediaType:      p.MediaType,
	}
}

// Preview returns the first 50 characters of content followed by "..."
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= previewRunes {
		return content + "..."
	}
	return string([]rune(content)[:previewRunes]) + "..."
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// counter counts values and remembers the order they were first seen in
type counter struct {
	counts map[string]int
	keys   []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(v string) {
	if _, ok := c.counts[v]; !ok {
		c.keys = append(c.keys, v)
	}
	c.counts[v]++
}

// top returns the n most frequent values, ties in first-seen order
func (c *counter) top(n int) []analysis.Ranked {
	ranked := make([]analysis.Ranked, len(c.keys))
	for i, k := range c.keys {
		ranked[i] = analysis.Ranked{Value: k, Count: c.counts[k]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
