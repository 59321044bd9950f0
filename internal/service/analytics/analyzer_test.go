package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skraper/internal/domain/analysis"
	"skraper/internal/domain/scrape"
)

func post(id, content string, likes, comments, shares int) scrape.Post {
	return Annotate(scrape.Post{
		ID:        id,
		Content:   content,
		Likes:     likes,
		Comments:  comments,
		Shares:    shares,
		MediaType: scrape.MediaImage,
	})
}

func TestAnalyzeSentiment(t *testing.T) {
	testCases := []struct {
		content  string
		label    string
		strength int
	}{
		{"Amazing launch, we LOVE it", SentimentPositive, 2},
		{"Terrible service, I am upset", SentimentNegative, 2},
		{"Great but sad", SentimentNeutral, 0},
		{"", SentimentNeutral, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.content, func(t *testing.T) {
			s := AnalyzeSentiment(tc.content)
			assert.Equal(t, tc.label, s.Label)
			assert.Equal(t, tc.strength, s.Strength)
		})
	}
}

func TestDetectCallToAction(t *testing.T) {
	cta := DetectCallToAction("Swipe up and check out the link in bio!")
	assert.True(t, cta.HasCTA)
	assert.Equal(t, []string{"swipe", "link in bio", "check out"}, cta.Types)
	assert.Equal(t, 3, cta.Strength)

	none := DetectCallToAction("Quiet afternoon")
	assert.False(t, none.HasCTA)
	assert.Empty(t, none.Types)
	assert.NotNil(t, none.Types)
}

func TestCountEmoji(t *testing.T) {
	assert.Equal(t, 2, CountEmoji("Launch day 🚀 so good ✨"))
	assert.Equal(t, 0, CountEmoji("plain text, 100% ok"))
}

func TestAnnotateFillsDerivedFields(t *testing.T) {
	p := Annotate(scrape.Post{Content: "Amazing 🚀 click here"})
	assert.Equal(t, SentimentPositive, p.Sentiment.Label)
	assert.True(t, p.CallToAction.HasCTA)
	assert.Equal(t, 1, p.EmojiCount)
	assert.Equal(t, 20, p.PostLength)
	assert.NotNil(t, p.Hashtags)
	assert.NotNil(t, p.Mentions)
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	_, err := NewAnalyzer(Config{}).Analyze(nil)
	require.ErrorIs(t, err, scrape.ErrEmptyBatch)
}

func TestEngagement(t *testing.T) {
	posts := []scrape.Post{
		post("a", "first", 100, 10, 5),
		post("b", "second", 300, 0, 0),
		post("c", "third", 200, 50, 50),
		post("d", "fourth", 0, 0, 1),
	}

	e := NewAnalyzer(Config{FollowerBaseline: 10000}).Engagement(posts)

	assert.Equal(t, analysis.Totals{Likes: 600, Comments: 60, Shares: 56}, e.TotalEngagement)
	assert.Equal(t, analysis.Totals{Likes: 150, Comments: 15, Shares: 14}, e.AverageEngagement)
	assert.InDelta(t, 0.0179, e.EngagementRate, 1e-9)

	// b and c tie on 300, first wins
	assert.Equal(t, "b", e.BestPost.ID)
	assert.Equal(t, 300, e.BestPost.Engagement)
	assert.Equal(t, "second...", e.BestPost.ContentPreview)
	assert.Equal(t, "d", e.WorstPost.ID)
}

func TestEngagementRateUsesBaseline(t *testing.T) {
	posts := []scrape.Post{post("a", "x", 500, 0, 0)}
	e := NewAnalyzer(Config{FollowerBaseline: 1000}).Engagement(posts)
	assert.InDelta(t, 0.5, e.EngagementRate, 1e-9)

	e = NewAnalyzer(Config{FollowerBaseline: -1}).Engagement(posts)
	assert.InDelta(t, 0.05, e.EngagementRate, 1e-9)

	e = NewAnalyzer(Config{FollowerBaseline: math.NaN()}).Engagement(posts)
	assert.InDelta(t, 0.05, e.EngagementRate, 1e-9)

	e = NewAnalyzer(Config{FollowerBaseline: math.Inf(1)}).Engagement(posts)
	assert.InDelta(t, 0.05, e.EngagementRate, 1e-9)
}

func TestVoice(t *testing.T) {
	posts := []scrape.Post{
		post("1", "Amazing day 🚀🔥 follow us", 0, 0, 0),
		post("2", "Terrible weather", 0, 0, 0),
		post("3", "Great news 🎉✨ comment below", 0, 0, 0),
	}

	v := Voice(posts)

	assert.Equal(t, map[string]int{SentimentPositive: 2, SentimentNegative: 1}, v.SentimentDistribution)
	assert.Equal(t, SentimentPositive, v.PrimarySentiment)
	assert.InDelta(t, 0.67, v.CTAFrequency, 1e-9)
	assert.InDelta(t, 1.33, v.AverageEmojiCount, 1e-9)
	assert.True(t, v.ToneIndicators.Casual)
	assert.True(t, v.ToneIndicators.Engaging)
	assert.False(t, v.ToneIndicators.Professional)
	// 2 of 3 is above 60%
	assert.True(t, v.ToneIndicators.Positive)
}

func TestVoicePrimarySentimentTieGoesToFirst(t *testing.T) {
	posts := []scrape.Post{
		post("1", "awful", 0, 0, 0),
		post("2", "brilliant", 0, 0, 0),
	}
	assert.Equal(t, SentimentNegative, Voice(posts).PrimarySentiment)
}

func TestThemes(t *testing.T) {
	posts := []scrape.Post{
		post("1", "New product launch for the team #BrandLaunch #new", 0, 0, 0),
		post("2", "Our team tip of the day #new", 0, 0, 0),
	}
	posts[0].Hashtags = []string{"#BrandLaunch", "#new"}
	posts[1].Hashtags = []string{"#new"}
	posts[1].MediaType = scrape.MediaVideo

	th := Themes(posts)

	assert.Equal(t, []string{"product_focused", "educational", "community"}, th.ContentThemes)
	assert.Equal(t, map[string]int{scrape.MediaImage: 1, scrape.MediaVideo: 1}, th.MediaTypeDistribution)
	require.NotEmpty(t, th.MostUsedHashtags)
	assert.Equal(t, analysis.Ranked{Value: "#new", Count: 2}, th.MostUsedHashtags[0])
	assert.Equal(t, analysis.Ranked{Value: "new", Count: 3}, th.MostCommonWords[0])
	assert.Equal(t, 1, th.HashtagStrategy.BrandedHashtags)
	assert.Equal(t, 1, th.HashtagStrategy.TrendingHashtags)
	assert.InDelta(t, 1.5, th.HashtagStrategy.AverageHashtagsPerPost, 1e-9)
}

func TestMostCommonWordsCapsAtTen(t *testing.T) {
	p := post("1", "a b c d e f g h i j k l a", 0, 0, 0)
	words := Themes([]scrape.Post{p}).MostCommonWords
	require.Len(t, words, 10)
	assert.Equal(t, "a", words[0].Value)
	assert.Equal(t, "b", words[1].Value)
}

func TestStatistics(t *testing.T) {
	posts := []scrape.Post{
		{Likes: 1, Comments: 2, Shares: 3, MediaURL: "https://cdn/x.jpg"},
		{Likes: 4, Comments: 5, Shares: 6},
	}
	stats := Statistics(posts)
	assert.Equal(t, 2, stats.TotalPosts)
	assert.Equal(t, 1, stats.MediaItems)
	assert.Equal(t, analysis.EngagementMetrics{TotalLikes: 5, TotalComments: 7, TotalShares: 9}, stats.EngagementMetrics)

	assert.Equal(t, analysis.Statistics{}, Statistics(nil))
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	posts := []scrape.Post{
		post("1", "Shop now, limited sale #deal", 10, 1, 0),
		post("2", "Behind the scenes of our process", 20, 2, 1),
	}
	a := NewAnalyzer(Config{})

	first, err := a.Analyze(posts)
	require.NoError(t, err)
	second, err := a.Analyze(posts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 30, first.Performance.TotalLikes)
	assert.InDelta(t, 17, first.Performance.AverageEngagementPerPost, 1e-9)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short...", Preview("short"))
	long := "0123456789012345678901234567890123456789012345678901234567890"
	assert.Equal(t, long[:50]+"...", Preview(long))
}
