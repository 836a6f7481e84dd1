// File: internal/formatter/strings_test.go
package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "foo bar", "foo bar"},
		{"runs of spaces", "foo    bar", "foo bar"},
		{"tabs and newlines", "foo\t\n bar", "foo bar"},
		{"leading and trailing", "  foo  ", " foo "},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collapseWhitespace(tt.input))
		})
	}
}

func TestRemoveEmptyLines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", removeEmptyLines("a\n\n\nb\nc"))
	assert.Equal(t, "\na", removeEmptyLines("\n\na"))
}

func TestRemoveTrailingSpace(t *testing.T) {
	assert.Equal(t, "a\nb", removeTrailingSpace("a   \nb"))
	assert.Equal(t, "a\n\nb", removeTrailingSpace("a \n \nb"))
	assert.Equal(t, "a \tb", removeTrailingSpace("a \tb"))
}

func TestEscapeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nothing to escape", "plain text", "plain text"},
		{"ampersand", "a & b", "a &amp; b"},
		{"angle brackets", "1 < 2 > 0", "1 &lt; 2 &gt; 0"},
		{"quotes", `say "hi" or 'hi'`, "say &quot;hi&quot; or &apos;hi&apos;"},
		{"already escaped input is escaped again", "&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeEntities(tt.input))
		})
	}
}
