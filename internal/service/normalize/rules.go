package normalize

// Canonical fields resolved through the rule table
const (
	fieldID        = "id"
	fieldUsername  = "username"
	fieldContent   = "content"
	fieldTimestamp = "timestamp"
	fieldLikes     = "likes"
	fieldComments  = "comments"
	fieldShares    = "shares"
	fieldMediaURL  = "media_url"
	fieldCaption   = "caption"
	fieldHashtags  = "hashtags"
	fieldMentions  = "mentions"
	fieldMediaType = "media_type"
	fieldViews     = "view_count"
	fieldDuration  = "duration"
)

// fieldRules lists, per canonical field, the source keys probed in order. The
// first key holding a usable value wins. Keeping every platform's naming here
// means schema drift is fixed in one place.
var fieldRules = map[string][]string{
	fieldID:        {"id", "post_id", "display_id", "shortcode"},
	fieldUsername:  {"username", "uploader", "author", "channel", "owner_username", "user", "uploader_id"},
	fieldContent:   {"content", "text", "caption", "title", "description", "raw_output"},
	fieldTimestamp: {"timestamp", "created_at", "upload_date", "date", "published_at", "taken_at", "create_time"},
	fieldLikes:     {"likes", "like_count", "likes_count", "favorite_count", "digg_count"},
	fieldComments:  {"comments", "comment_count", "comments_count", "num_comments", "reply_count"},
	fieldShares:    {"shares", "share_count", "shares_count", "repost_count", "retweet_count"},
	fieldMediaURL:  {"media_url", "image_url", "video_url", "thumbnail", "display_url"},
	fieldCaption:   {"caption", "description"},
	fieldHashtags:  {"hashtags"},
	fieldMentions:  {"mentions"},
	fieldMediaType: {"media_type"},
	fieldViews:     {"view_count", "views", "play_count"},
	fieldDuration:  {"duration"},
}

// nestedUserKeys are probed when the username candidate is an object
var nestedUserKeys = []string{"username", "name", "id"}

// batchKeys hold the nested item list of a structured response
var batchKeys = []string{"posts", "data", "entries"}

// mediaTypeAliases maps platform specific media kinds onto the canonical set
var mediaTypeAliases = map[string]string{
	"image":    "image",
	"photo":    "image",
	"picture":  "image",
	"video":    "video",
	"reel":     "video",
	"clip":     "video",
	"carousel": "carousel",
	"album":    "carousel",
	"sidecar":  "carousel",
	"gallery":  "carousel",
}
