// Package htmlsanitize strips markup from user-supplied text.
//
// Titles and descriptions are rendered by clients as HTML, so anything
// tag-shaped is removed before it is stored. The result is plain text:
// entities are decoded so "Tom & Jerry" round-trips unchanged, and the
// decoded text is sanitised again until it is stable, so entity-encoded
// markup cannot come back as live tags.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds the sanitise/decode loop for nested encodings.
const maxPasses = 5

// PlainText removes all tags (and the contents of script/style elements)
// and trims surrounding whitespace.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// Still changing: keep the escaped form.
	return strings.TrimSpace(strict.Sanitize(out))
}

// PlainTextPtr applies PlainText through a pointer, keeping nil as nil.
func PlainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := PlainText(*s)
	return &out
}
