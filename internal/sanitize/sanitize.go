// Package sanitize reduces raw HTML pages and RSS/XML feeds to bounded plain
// text suitable for prompting. All functions are pure and deterministic.
package sanitize

import (
	"regexp"
	"strings"
)

const (
	// PageTextLimit caps text sent to the model for a single imported page.
	PageTextLimit = 12000
	// FeedTextLimit caps text sent to the model per RSS feed.
	FeedTextLimit = 20000

	truncationMarker = "\n[truncated]"
)

var (
	scriptRe      = regexp.MustCompile(`(?i)<script[\s\S]*?</script>`)
	styleRe       = regexp.MustCompile(`(?i)<style[\s\S]*?</style>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	cdataRe       = regexp.MustCompile(`<!\[CDATA\[([\s\S]*?)\]\]>`)
	scriptStyleRe = regexp.MustCompile(`(?i)<(?:script|style)[^>]*>[\s\S]*?</(?:script|style)>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// PageText strips an HTML document down to plain text: script/style blocks and
// all tags removed, the five standard entities decoded, whitespace runs
// collapsed, then truncated to PageTextLimit.
func PageText(html string) string {
	text := scriptRe.ReplaceAllString(html, "")
	text = styleRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = decodeEntities(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return Truncate(strings.TrimSpace(text), PageTextLimit)
}

// FeedText is the RSS-flavored cleanup: CDATA sections unwrapped and entities
// decoded, but markup otherwise left in place so the model can still see the
// item structure. Truncated to FeedTextLimit.
func FeedText(raw string) string {
	text := cdataRe.ReplaceAllString(raw, "$1")
	text = scriptStyleRe.ReplaceAllString(text, "")
	text = decodeEntities(text)
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return Truncate(strings.TrimSpace(text), FeedTextLimit)
}

// Truncate cuts s at max characters and appends a truncation marker when it
// was cut. Strings at or under the cap pass through untouched.
func Truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + truncationMarker
	}
	return s
}

// Entities are decoded sequentially in this order, matching long-standing
// behavior: "&amp;lt;" decodes to "<", not "&lt;".
func decodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	return s
}
