package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips dangerous markup from rich-text editor content while
// keeping the formatting tags the admin editor produces (headings, lists,
// links, images, tables, code blocks).
func SanitizeHTML(html string) string {
	return ugcPolicy.Sanitize(html)
}
