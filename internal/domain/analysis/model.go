package analysis

// Ranked is one entry of a frequency table, kept in rank order
type Ranked struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ToneIndicators are the brand voice flags derived from a batch
type ToneIndicators struct {
	Professional bool `json:"professional"`
	Casual       bool `json:"casual"`
	Engaging     bool `json:"engaging"`
	Positive     bool `json:"positive"`
}

// Voice summarizes tone and style across a batch of posts
type Voice struct {
	AverageCaptionLength  float64        `json:"average_caption_length"`
	AverageEmojiCount     float64        `json:"average_emoji_count"`
	CTAFrequency          float64        `json:"cta_frequency"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	PrimarySentiment      string         `json:"primary_sentiment"`
	ToneIndicators        ToneIndicators `json:"tone_indicators"`
}

// Totals holds summed or averaged engagement counters
type Totals struct {
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Shares   float64 `json:"shares"`
}

// PostRef points at a post of a batch
type PostRef struct {
	ID             string `json:"id"`
	Engagement     int    `json:"engagement"`
	ContentPreview string `json:"content_preview"`
	MediaType      string `json:"media_type"`
}

// Engagement summarizes engagement across a batch of posts
type Engagement struct {
	TotalEngagement   Totals  `json:"total_engagement"`
	AverageEngagement Totals  `json:"average_engagement"`
	EngagementRate    float64 `json:"engagement_rate"`
	BestPost          PostRef `json:"best_performing_post"`
	WorstPost         PostRef `json:"worst_performing_post"`
}

// HashtagStrategy describes hashtag usage across a batch
type HashtagStrategy struct {
	BrandedHashtags        int     `json:"branded_hashtags"`
	TrendingHashtags       int     `json:"trending_hashtags"`
	AverageHashtagsPerPost float64 `json:"average_hashtags_per_post"`
}

// Themes describes what a batch of posts talks about
type Themes struct {
	MostCommonWords       []Ranked        `json:"most_common_words"`
	MostUsedHashtags      []Ranked        `json:"most_used_hashtags"`
	MediaTypeDistribution map[string]int  `json:"media_type_distribution"`
	ContentThemes         []string        `json:"content_themes"`
	HashtagStrategy       HashtagStrategy `json:"hashtag_strategy"`
}

// Performance holds overall totals for a batch
type Performance struct {
	TotalLikes               int     `json:"total_likes"`
	TotalComments            int     `json:"total_comments"`
	TotalShares              int     `json:"total_shares"`
	AverageEngagementPerPost float64 `json:"average_engagement_per_post"`
}

// Result is the complete analysis of a batch. It is recomputed per request.
type Result struct {
	Voice       Voice       `json:"voice_analysis"`
	Engagement  Engagement  `json:"engagement_patterns"`
	Themes      Themes      `json:"content_themes"`
	Performance Performance `json:"overall_performance"`
}

// EngagementMetrics holds the totals reported by the basic scrape endpoint
type EngagementMetrics struct {
	TotalLikes    int `json:"total_likes"`
	TotalComments int `json:"total_comments"`
	TotalShares   int `json:"total_shares"`
}

// Statistics is the lightweight summary returned by the basic scrape endpoint
type Statistics struct {
	TotalPosts        int               `json:"total_posts"`
	MediaItems        int               `json:"media_items"`
	EngagementMetrics EngagementMetrics `json:"engagement_metrics"`
}

// ContentStrategy echoes the voice metrics as targets for new content
type ContentStrategy struct {
	OptimalPostLength     float64        `json:"optimal_post_length"`
	RecommendedEmojiUsage float64        `json:"recommended_emoji_usage"`
	CTAFrequency          float64        `json:"cta_frequency"`
	ToneGuidelines        ToneIndicators `json:"tone_guidelines"`
}

// EngagementOptimization holds engagement oriented suggestions
type EngagementOptimization struct {
	BestPerformingContent string  `json:"best_performing_content_type"`
	EngagementRate        float64 `json:"engagement_rate"`
	OptimalHashtagCount   float64 `json:"optimal_hashtag_count"`
}

// VoiceGuidelines are the qualitative brand voice rules
type VoiceGuidelines struct {
	PrimaryTone    string `json:"primary_tone"`
	FormalityLevel string `json:"formality_level"`
	EmojiStrategy  string `json:"emoji_strategy"`
	CTAApproach    string `json:"cta_approach"`
}

// Recommendations are content strategy suggestions derived from a Result
type Recommendations struct {
	ContentStrategy        ContentStrategy        `json:"content_strategy"`
	EngagementOptimization EngagementOptimization `json:"engagement_optimization"`
	VoiceGuidelines        VoiceGuidelines        `json:"brand_voice_guidelines"`
	ContentIdeas           []string               `json:"content_ideas"`
}
