package analytics

var positiveWords = []string{
	"amazing", "awesome", "great", "excellent", "fantastic", "love", "perfect",
	"incredible", "outstanding", "brilliant", "excited", "happy", "thrilled",
	"proud", "grateful",
}

var negativeWords = []string{
	"terrible", "awful", "horrible", "hate", "disappointed", "frustrated",
	"angry", "sad", "annoyed", "upset", "worried", "concerned",
}

var ctaKeywords = []string{
	"click", "swipe", "link in bio", "check out", "visit", "shop now",
	"buy now", "order", "subscribe", "follow", "share", "comment",
	"tell us", "what do you think", "change my mind", "pro tip",
	"reminder", "alert", "don't miss",
}

type theme struct {
	name     string
	keywords []string
}

// themes is reported in this order
var themes = []theme{
	{"product_focused", []string{"product", "launch", "new", "available"}},
	{"behind_scenes", []string{"behind", "scenes", "process", "making"}},
	{"customer_focused", []string{"customer", "client", "review", "testimonial"}},
	{"educational", []string{"tip", "how", "guide", "learn", "tutorial"}},
	{"promotional", []string{"sale", "discount", "offer", "deal", "limited"}},
	{"community", []string{"community", "family", "team", "together"}},
}

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	topN           = 10
	previewRunes   = 50
	professionalAt = 100.0
	casualAt       = 1.0
	engagingAt     = 0.3
	positiveShare  = 0.6
)
