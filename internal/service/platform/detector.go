// internal/service/platform/detector.go

package platform

import (
	"regexp"
	"strings"
)

// Platform identifiers
const (
	Instagram     = "instagram"
	TikTok        = "tiktok"
	Twitter       = "twitter"
	YouTube       = "youtube"
	Facebook      = "facebook"
	Reddit        = "reddit"
	Pinterest     = "pinterest"
	Flickr        = "flickr"
	Tumblr        = "tumblr"
	Telegram      = "telegram"
	Twitch        = "twitch"
	Vimeo         = "vimeo"
	VK            = "vk"
	NineGag       = "9gag"
	IFunny        = "ifunny"
	Coub          = "coub"
	Odnoklassniki = "odnoklassniki"
	Pikabu        = "pikabu"
)

type rule struct {
	platform string
	pattern  *regexp.Regexp
}

// hostPattern matches any of the domains on a host boundary, so "x.com" does
// not fire inside "dropbox.com".
func hostPattern(domains ...string) *regexp.Regexp {
	quoted := make([]string, len(domains))
	for i, d := range domains {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(`(?i)(?:^|[/.@])(?:` + strings.Join(quoted, "|") + `)(?:[/:?#]|$)`)
}

// rules is evaluated in order; the first match wins.
var rules = []rule{
	{Instagram, hostPattern("instagram.com", "instagr.am")},
	{TikTok, hostPattern("tiktok.com")},
	{Twitter, hostPattern("twitter.com", "x.com")},
	{YouTube, hostPattern("youtube.com", "youtu.be")},
	{Facebook, hostPattern("facebook.com")},
	{Reddit, hostPattern("reddit.com")},
	{Pinterest, hostPattern("pinterest.com")},
	{Flickr, hostPattern("flickr.com")},
	{Tumblr, hostPattern("tumblr.com")},
	{Telegram, hostPattern("t.me")},
	{Twitch, hostPattern("twitch.tv")},
	{Vimeo, hostPattern("vimeo.com")},
	{VK, hostPattern("vk.com")},
	{NineGag, hostPattern("9gag.com")},
	{IFunny, hostPattern("ifunny.co")},
	{Coub, hostPattern("coub.com")},
	{Odnoklassniki, hostPattern("odnoklassniki.ru")},
	{Pikabu, hostPattern("pikabu.ru")},
}

var (
	schemeAndHost = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://[^/]+`)
	firstSegment  = regexp.MustCompile(`/([^/?#]+)`)
	tiktokUser    = regexp.MustCompile(`/@([^/?#]+)`)
	usernameInURL = regexp.MustCompile(`/(?:@)?([^/?#]+)`)
)

// Detector implements scrape.Detector with ordered domain patterns
type Detector struct{}

// NewDetector creates a new platform detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the platform of a URL, false when no pattern matches
func (d *Detector) Detect(url string) (string, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(url) {
			return r.platform, true
		}
	}
	return "", false
}

// Supported lists every known platform in detection order
func (d *Detector) Supported() []string {
	platforms := make([]string, len(rules))
	for i, r := range rules {
		platforms[i] = r.platform
	}
	return platforms
}

// ExtractPath returns the path component the skraper CLI expects for a platform
func (d *Detector) ExtractPath(url, platform string) string {
	path := schemeAndHost.ReplaceAllString(url, "")

	switch platform {
	case Instagram, Twitter:
		if m := firstSegment.FindStringSubmatch(path); m != nil {
			return m[1]
		}
	case TikTok:
		if m := tiktokUser.FindStringSubmatch(path); m != nil {
			return "/@" + m[1]
		}
	}

	return path
}

// ExtractUsername returns the first path segment of a URL without a leading @
func ExtractUsername(url string) string {
	path := schemeAndHost.ReplaceAllString(url, "")
	if m := usernameInURL.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return "brand_username"
}
