// internal/service/recommend/generator.go

package recommend

import (
	"math"

	"skraper/internal/domain/analysis"
	"skraper/internal/domain/scrape"
)

// Formality, emoji and call-to-action guideline values
const (
	FormalitySemiFormal = "semi_formal"
	FormalityCasual     = "casual"
	EmojiModerate       = "moderate"
	EmojiMinimal        = "minimal"
	CTAFrequent         = "frequent"
	CTAOccasional       = "occasional"
)

// Content ideas emitted by the decision table
const (
	IdeaThoughtLeadership = "Industry insights and thought leadership content"
	IdeaBehindTheScenes   = "Behind-the-scenes of business operations"
	IdeaTeamCulture       = "Team culture and workplace content"
	IdeaUserGenerated     = "User-generated content and community features"
	IdeaPolls             = "Interactive polls and Q&A sessions"
	IdeaChallenges        = "Challenges and contests"
	IdeaMoreVideo         = "More video content and tutorials"
	IdeaImageCarousels    = "High-quality image carousels"
)

// Recommend derives content strategy suggestions from a batch and its voice
// and engagement analysis. posts must not be empty.
func Recommend(posts []scrape.Post, voice analysis.Voice, engagement analysis.Engagement) analysis.Recommendations {
	var hashtags int
	for _, p := range posts {
		hashtags += len(p.Hashtags)
	}
	var optimalHashtags float64
	if len(posts) > 0 {
		optimalHashtags = math.Round(float64(hashtags)/float64(len(posts))*100) / 100
	}

	return analysis.Recommendations{
		ContentStrategy: analysis.ContentStrategy{
			OptimalPostLength:     voice.AverageCaptionLength,
			RecommendedEmojiUsage: voice.AverageEmojiCount,
			CTAFrequency:          voice.CTAFrequency,
			ToneGuidelines:        voice.ToneIndicators,
		},
		EngagementOptimization: analysis.EngagementOptimization{
			BestPerformingContent: engagement.BestPost.ContentPreview,
			EngagementRate:        engagement.EngagementRate,
			OptimalHashtagCount:   optimalHashtags,
		},
		VoiceGuidelines: Guidelines(voice),
		ContentIdeas:    Ideas(voice.ToneIndicators, engagement.BestPost.MediaType),
	}
}

// Guidelines maps voice metrics onto qualitative brand voice rules
func Guidelines(voice analysis.Voice) analysis.VoiceGuidelines {
	g := analysis.VoiceGuidelines{
		PrimaryTone:    voice.PrimarySentiment,
		FormalityLevel: FormalityCasual,
		EmojiStrategy:  EmojiMinimal,
		CTAApproach:    CTAOccasional,
	}
	if voice.AverageCaptionLength > 100 {
		g.FormalityLevel = FormalitySemiFormal
	}
	if voice.AverageEmojiCount > 1 {
		g.EmojiStrategy = EmojiModerate
	}
	if voice.CTAFrequency > 0.3 {
		g.CTAApproach = CTAFrequent
	}
	return g
}

// Ideas returns content ideas for the tone flags, then one idea driven by the
// media type of the best performing post.
func Ideas(tone analysis.ToneIndicators, bestMediaType string) []string {
	ideas := []string{}
	if tone.Professional {
		ideas = append(ideas, IdeaThoughtLeadership, IdeaBehindTheScenes)
	}
	if tone.Casual {
		ideas = append(ideas, IdeaTeamCulture, IdeaUserGenerated)
	}
	if tone.Engaging {
		ideas = append(ideas, IdeaPolls, IdeaChallenges)
	}
	if bestMediaType == scrape.MediaVideo {
		ideas = append(ideas, IdeaMoreVideo)
	} else {
		ideas = append(ideas, IdeaImageCarousels)
	}
	return ideas
}
