package scrape

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"skraper/internal/domain/scrape"
	"skraper/internal/service/platform"
)

// BackendFixture is the name of the generated-data backend
const BackendFixture = "fixture"

const maxFixturePosts = 20

var sampleContent = map[string][]string{
	platform.Instagram: {
		"Amazing product launch! 🚀 Our new collection is finally here. What do you think? #ProductLaunch #Innovation",
		"Behind the scenes look at our creative process ✨ Swipe to see how we bring ideas to life! #BTS #CreativeProcess",
		"Customer spotlight! 💫 Meet Sarah, who transformed her business with our solution. Link in bio! #CustomerSuccess",
		"Monday motivation from our team! 💪 What's driving you this week? #MondayMotivation #TeamWork",
		"Flash sale alert! 🔥 50% off everything for the next 24 hours. Don't miss out! #FlashSale #LimitedTime",
	},
	platform.TikTok: {
		"POV: You discover our product and your life changes forever ✨ #LifeHack #ProductFind",
		"This trick saved me $1000! 💰 You need to try this #MoneySaving #LifeTips",
		"Rating our products as a honest customer 📊 Part 1 #ProductReview #HonestOpinion",
		"Things I wish I knew before starting my business 💡 #BusinessTips #EntrepreneurLife",
		"Transform your space with this one simple product 🏠 #HomeTransformation #BeforeAndAfter",
	},
	platform.Twitter: {
		"Just shipped a major update! 🚢 What feature are you most excited about? #ProductUpdate #TechNews",
		"Hot take: The future of marketing is community-driven. Change my mind. 🧠 #MarketingTwitter #Community",
		"Pro tip: Always test your assumptions. What worked yesterday might not work tomorrow. #BusinessAdvice",
		"Breaking: We're expanding to 5 new markets! Which city should we launch in next? 🌍 #Expansion #Growth",
		"Reminder: Your customers are your best marketers. Focus on creating advocates, not just buyers. #CustomerAdvocacy",
	},
}

var fixtureMediaTypes = []string{scrape.MediaImage, scrape.MediaVideo, scrape.MediaCarousel}

// FixtureInvoker generates deterministic sample records for a URL. Records use
// the field names of several real tools so they exercise the normalizer the
// same way live output does.
type FixtureInvoker struct {
	now func() time.Time
}

// NewFixtureInvoker creates a fixture backend; nil now means time.Now
func NewFixtureInvoker(now func() time.Time) *FixtureInvoker {
	if now == nil {
		now = time.Now
	}
	return &FixtureInvoker{now: now}
}

// Name returns "fixture"
func (f *FixtureInvoker) Name() string {
	return BackendFixture
}

// Available is always true
func (f *FixtureInvoker) Available(ctx context.Context) bool {
	return true
}

// Invoke returns up to 20 generated records. The same URL, limit and clock
// always produce the same records.
func (f *FixtureInvoker) Invoke(ctx context.Context, target scrape.Target, opts scrape.Options) (*scrape.RawOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	faker := gofakeit.New(seedFor(target.URL))
	content, ok := sampleContent[target.Platform]
	if !ok {
		content = sampleContent[platform.Instagram]
	}
	username := platform.ExtractUsername(target.URL)
	now := f.now().UTC()

	count := opts.Limit
	if count < 1 {
		count = 1
	}
	if count > maxFixturePosts {
		count = maxFixturePosts
	}

	records := make([]any, 0, count)
	for i := 0; i < count; i++ {
		text := content[i%len(content)]
		posted := faker.DateRange(now.Add(-30*24*time.Hour), now.Add(-time.Hour))
		mediaType := faker.RandomString(fixtureMediaTypes)
		likes := faker.IntRange(50, 5000)
		comments := faker.IntRange(5, 200)
		shares := faker.IntRange(0, 50)
		mediaURL := fmt.Sprintf("https://example.com/media_%d.jpg", i+1)

		if opts.ContentType == scrape.ContentMediaOnly && mediaType == scrape.MediaCarousel {
			mediaType = scrape.MediaImage
		}

		// alternate between skraper style and yt-dlp style field names
		if i%2 == 0 {
			records = append(records, map[string]any{
				"id":         fmt.Sprintf("post_%d", i+1),
				"username":   username,
				"content":    text,
				"caption":    text,
				"timestamp":  posted.Format(time.RFC3339),
				"likes":      likes,
				"comments":   comments,
				"shares":     shares,
				"media_url":  mediaURL,
				"media_type": mediaType,
			})
			continue
		}
		records = append(records, map[string]any{
			"display_id":    fmt.Sprintf("post_%d", i+1),
			"uploader":      username,
			"title":         text,
			"description":   text,
			"upload_date":   posted.Format("20060102"),
			"like_count":    likes,
			"comment_count": comments,
			"repost_count":  shares,
			"thumbnail":     mediaURL,
			"media_type":    mediaType,
		})
	}

	return &scrape.RawOutput{
		Backend: BackendFixture,
		Data:    records,
		Records: len(records),
		Elapsed: time.Since(start),
	}, nil
}

func seedFor(url string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(url))
	// gofakeit treats 0 as "seed randomly"
	if seed := h.Sum64(); seed != 0 {
		return seed
	}
	return 1
}
