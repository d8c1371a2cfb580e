package utils

import (
	"regexp"
	"strings"
)

var (
	blockTags  = regexp.MustCompile(`<(\/)?(p|br|div|h[1-6]|li|ol|ul)[^>]*>`)
	allTags    = regexp.MustCompile(`<[^>]+>`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// MakeExcerpt generates a plain text excerpt from HTML content. Block-level
// tags become spaces so word boundaries survive, remaining tags are stripped
// and the text is truncated to limit characters.
func MakeExcerpt(html string, limit int) string {
	if html == "" {
		return ""
	}

	withSpaces := blockTags.ReplaceAllString(html, " ")
	text := allTags.ReplaceAllString(withSpaces, "")

	clean := multiSpace.ReplaceAllString(text, " ")
	clean = strings.TrimSpace(clean)

	if len(clean) > limit {
		return clean[:limit] + "..."
	}

	return clean
}
