// Package normalize canonicalizes serialized document HTML before
// storage or publish. It is idempotent and does not sanitize; injection
// concerns belong to the preview renderer's consumer.
package normalize

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
)

// EmptyParagraph is the canonical empty paragraph marker.
const EmptyParagraph = "<p><br></p>"

var (
	reBreakRun  = regexp.MustCompile(`(?i)(?:<br\s*/?>\s*){2,}`)
	reEmptyPara = regexp.MustCompile(`(?is)<p[^>]*>(?:\s|&nbsp;|\x{00a0}|<br\s*/?>)*</p>`)
	reMarkerRun = regexp.MustCompile(`(?:<p><br></p>\s*){2,}`)
	reLeading   = regexp.MustCompile(`^\s*(?:<p><br></p>\s*)+`)
	reTrailing  = regexp.MustCompile(`(?:\s*<p><br></p>)+\s*$`)
)

// Normalize returns the canonical form of serialized document HTML:
// whitespace-only paragraphs collapse to one empty-paragraph marker,
// marker runs collapse to one, leading and trailing markers are
// stripped, and runs of consecutive line breaks collapse to one.
func Normalize(html string) string {
	s := string(markdown.NormalizeNewlines([]byte(html)))
	s = reBreakRun.ReplaceAllString(s, "<br>")
	s = reEmptyPara.ReplaceAllString(s, EmptyParagraph)
	s = reMarkerRun.ReplaceAllString(s, EmptyParagraph)
	s = reLeading.ReplaceAllString(s, "")
	s = reTrailing.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
