// internal/service/normalize/normalizer.go

package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"skraper/internal/domain/scrape"
)

var (
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	mentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
)

// Normalizer maps raw scraper items onto the canonical post schema
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer. now supplies the timestamp of items that
// carry none; nil means time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize converts one raw item into a canonical post. It never fails: any
// JSON value yields a post with every field set.
func (n *Normalizer) Normalize(raw any, index int) scrape.Post {
	item, ok := raw.(map[string]any)
	if !ok {
		return n.fromScalar(raw, index)
	}

	post := scrape.Post{
		ID:        firstString(item, fieldID, fmt.Sprintf("item_%d", index)),
		Username:  n.username(item),
		Content:   firstString(item, fieldContent, ""),
		Timestamp: n.timestamp(item),
		Likes:     firstCount(item, fieldLikes),
		Comments:  firstCount(item, fieldComments),
		Shares:    firstCount(item, fieldShares),
		MediaURL:  firstString(item, fieldMediaURL, ""),
		Caption:   firstString(item, fieldCaption, ""),
		MediaType: mediaType(item),
		ViewCount: firstCount(item, fieldViews),
		Duration:  firstFloat(item, fieldDuration),
	}

	// an explicit list, even an empty one, wins over extraction
	if post.Hashtags, ok = stringList(item, fieldHashtags); !ok {
		post.Hashtags = ExtractHashtags(post.Content)
	}
	if post.Mentions, ok = stringList(item, fieldMentions); !ok {
		post.Mentions = ExtractMentions(post.Content)
	}
	post.PostLength = utf8.RuneCountInString(post.Content)

	return post
}

// NormalizeBatch normalizes a whole backend payload. Lists are normalized item
// by item, mappings holding posts/data/entries are unwrapped, any other mapping
// is a single item. limit <= 0 keeps every item.
func (n *Normalizer) NormalizeBatch(raw any, limit int) []scrape.Post {
	items := batchItems(raw)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	posts := make([]scrape.Post, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		post := n.Normalize(item, i)
		post.ID = uniqueID(post.ID, i, seen)
		posts = append(posts, post)
	}
	return posts
}

func (n *Normalizer) fromScalar(raw any, index int) scrape.Post {
	content := stringify(raw)
	return scrape.Post{
		ID:         fmt.Sprintf("item_%d", index),
		Username:   "unknown",
		Content:    content,
		Timestamp:  n.nowISO(),
		MediaType:  scrape.MediaImage,
		Hashtags:   ExtractHashtags(content),
		Mentions:   ExtractMentions(content),
		PostLength: utf8.RuneCountInString(content),
	}
}

func (n *Normalizer) username(item map[string]any) string {
	for _, key := range fieldRules[fieldUsername] {
		switch v := item[key].(type) {
		case map[string]any:
			for _, nested := range nestedUserKeys {
				if s, ok := toString(v[nested]); ok {
					return s
				}
			}
		default:
			if s, ok := toString(v); ok {
				return s
			}
		}
	}
	return "unknown"
}

func (n *Normalizer) timestamp(item map[string]any) string {
	for _, key := range fieldRules[fieldTimestamp] {
		v, ok := item[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
			return ConvertDate(t)
		case bool, map[string]any, []any:
			continue
		default:
			if f, ok := toFloat(t); ok {
				return epochToISO(f)
			}
		}
	}
	return n.nowISO()
}

func (n *Normalizer) nowISO() string {
	return n.now().UTC().Format(time.RFC3339)
}

// ConvertDate converts an 8 digit YYYYMMDD string to an ISO-8601 UTC midnight
// timestamp. Anything else, including invalid dates, is returned unchanged.
func ConvertDate(s string) string {
	if len(s) != 8 {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.RFC3339)
}

func epochToISO(seconds float64) string {
	// millisecond epochs
	if seconds > 1e12 {
		seconds /= 1000
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(time.RFC3339)
}

// ExtractHashtags returns every #word in content, in order of appearance
func ExtractHashtags(content string) []string {
	return findAll(hashtagPattern, content)
}

// ExtractMentions returns every @word in content, in order of appearance
func ExtractMentions(content string) []string {
	return findAll(mentionPattern, content)
}

func findAll(re *regexp.Regexp, content string) []string {
	matches := re.FindAllString(content, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

func mediaType(item map[string]any) string {
	if s, ok := toString(item[fieldRules[fieldMediaType][0]]); ok {
		if canonical, ok := mediaTypeAliases[strings.ToLower(s)]; ok {
			return canonical
		}
	}

	for _, key := range []string{"carousel_media", "children", "entries"} {
		if list, ok := item[key].([]any); ok && len(list) > 1 {
			return scrape.MediaCarousel
		}
	}
	if isVideo, ok := item["is_video"].(bool); ok && isVideo {
		return scrape.MediaVideo
	}
	if s, ok := toString(item["video_url"]); ok && s != "" {
		return scrape.MediaVideo
	}
	if d, ok := toFloat(item["duration"]); ok && d > 0 {
		return scrape.MediaVideo
	}
	return scrape.MediaImage
}

func batchItems(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items
	case map[string]any:
		for _, key := range batchKeys {
			switch nested := v[key].(type) {
			case []any:
				return nested
			case map[string]any:
				return []any{nested}
			}
		}
		return []any{v}
	default:
		return []any{v}
	}
}

func uniqueID(id string, index int, seen map[string]struct{}) string {
	candidate := id
	for n := index; ; n++ {
		if _, dup := seen[candidate]; !dup {
			seen[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
}

// firstString returns the first non-empty string among the field's candidate keys
func firstString(item map[string]any, field, fallback string) string {
	for _, key := range fieldRules[field] {
		if s, ok := toString(item[key]); ok {
			return s
		}
	}
	return fallback
}

func firstCount(item map[string]any, field string) int {
	for _, key := range fieldRules[field] {
		if n, ok := toCount(item[key]); ok {
			return n
		}
	}
	return 0
}

func firstFloat(item map[string]any, field string) float64 {
	for _, key := range fieldRules[field] {
		if f, ok := toFloat(item[key]); ok && f >= 0 {
			return f
		}
	}
	return 0
}

// stringList returns the strings of the first candidate key holding a list,
// and false when no candidate holds one
func stringList(item map[string]any, field string) ([]string, bool) {
	for _, key := range fieldRules[field] {
		list, ok := item[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// toString accepts non-empty strings and numbers
func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return t, true
		}
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// toCount accepts numbers, numeric strings ("1,204", "1.2K") and lists, which
// count their length. Negative values clamp to zero.
func toCount(v any) (int, bool) {
	if list, ok := v.([]any); ok {
		return len(list), true
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	if f < 0 || math.IsNaN(f) {
		return 0, true
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	return int(math.Round(f)), true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		return parseHumanNumber(t)
	}
	return 0, false
}

func parseHumanNumber(s string) (float64, bool) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if s == "" {
		return 0, false
	}
	multiplier := 1.0
	switch s[len(s)-1] {
	case 'K':
		multiplier, s = 1e3, s[:len(s)-1]
	case 'M':
		multiplier, s = 1e6, s[:len(s)-1]
	case 'B':
		multiplier, s = 1e9, s[:len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f * multiplier, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		if s, ok := toString(t); ok {
			return s
		}
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
