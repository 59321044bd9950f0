// internal/service/analytics/annotate.go

package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"skraper/internal/domain/scrape"
)

// Annotate fills the derived fields of a post: sentiment, call to action,
// emoji count and post length. Every backend's posts go through it, so the
// response schema does not depend on where the data came from.
func Annotate(post scrape.Post) scrape.Post {
	post.Sentiment = AnalyzeSentiment(post.Content)
	post.CallToAction = DetectCallToAction(post.Content)
	post.EmojiCount = CountEmoji(post.Content)
	post.PostLength = utf8.RuneCountInString(post.Content)
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	if post.Mentions == nil {
		post.Mentions = []string{}
	}
	return post
}

// AnnotateAll annotates a batch in place and returns it
func AnnotateAll(posts []scrape.Post) []scrape.Post {
	for i := range posts {
		posts[i] = Annotate(posts[i])
	}
	return posts
}

// AnalyzeSentiment counts positive and negative keywords in content
func AnalyzeSentiment(content string) scrape.Sentiment {
	lower := strings.ToLower(content)
	pos := countContained(lower, positiveWords)
	neg := countContained(lower, negativeWords)

	label := SentimentNeutral
	switch {
	case pos > neg:
		label = SentimentPositive
	case neg > pos:
		label = SentimentNegative
	}

	strength := pos - neg
	if strength < 0 {
		strength = -strength
	}
	return scrape.Sentiment{Label: label, Positive: pos, Negative: neg, Strength: strength}
}

// DetectCallToAction lists the call-to-action phrases found in content
func DetectCallToAction(content string) scrape.CallToAction {
	lower := strings.ToLower(content)
	found := []string{}
	for _, kw := range ctaKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return scrape.CallToAction{HasCTA: len(found) > 0, Types: found, Strength: len(found)}
}

// CountEmoji counts pictographic symbols in content
func CountEmoji(content string) int {
	n := 0
	for _, r := range content {
		if unicode.Is(unicode.So, r) {
			n++
		}
	}
	return n
}

func countContained(s string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			n++
		}
	}
	return n
}
