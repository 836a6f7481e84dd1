// File: internal/formatter/strings.go
package formatter

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	emptyLines       = regexp.MustCompile(`\n+`)
	trailingSpaceEOL = regexp.MustCompile(`[ \t\r]+\n`)
)

// collapseWhitespace replaces every run of whitespace characters with a single
// space. Line structure inside markup content is regenerated by the layout
// engine, never preserved.
func collapseWhitespace(s string) string {
	return whitespaceRuns.ReplaceAllString(s, " ")
}

// removeEmptyLines collapses consecutive newlines into one.
func removeEmptyLines(s string) string {
	return emptyLines.ReplaceAllString(s, "\n")
}

// removeTrailingSpace drops whitespace immediately before a line break.
func removeTrailingSpace(s string) string {
	return trailingSpaceEOL.ReplaceAllString(s, "\n")
}

// escapeEntities escapes the five predefined XML entities. The parser resolves
// entities on read, so text and attribute values must be re-escaped on output.
func escapeEntities(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
