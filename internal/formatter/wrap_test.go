// File: internal/formatter/wrap_test.go
package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		max   int
		want  []string
	}{
		{
			name:  "short lines untouched",
			lines: []string{"one", "two three"},
			max:   40,
			want:  []string{"one", "two three"},
		},
		{
			name:  "no whitespace at all stays unmodified",
			lines: []string{"<root>12345678901234567890123456789012345678901234567890</root>"},
			max:   40,
			want:  []string{"<root>12345678901234567890123456789012345678901234567890</root>"},
		},
		{
			name:  "split at last space before the limit",
			lines: []string{"<root>1234567890 1234567890123456789012345678901234567890</root>"},
			max:   40,
			want: []string{
				"<root>1234567890",
				"1234567890123456789012345678901234567890</root>",
			},
		},
		{
			name:  "split at first space after the limit",
			lines: []string{"<root>12345678901234567890123456789012345678901234 567890</root>"},
			max:   40,
			want: []string{
				"<root>12345678901234567890123456789012345678901234",
				"567890</root>",
			},
		},
		{
			name:  "continuation lines keep the indentation",
			lines: []string{"        alpha beta gamma delta epsilon zeta"},
			max:   20,
			want: []string{
				"        alpha beta",
				"        gamma delta",
				"        epsilon zeta",
			},
		},
		{
			name:  "line of exactly the limit is kept",
			lines: []string{strings.Repeat("ab ", 13) + "c"}, // 40 characters
			max:   40,
			want:  []string{strings.Repeat("ab ", 13) + "c"},
		},
		{
			name:  "zero max disables wrapping",
			lines: []string{strings.Repeat("word ", 50)},
			max:   0,
			want:  []string{strings.Repeat("word ", 50)},
		},
		{
			name:  "negative max disables wrapping",
			lines: []string{"a long line that would otherwise wrap for sure"},
			max:   -1,
			want:  []string{"a long line that would otherwise wrap for sure"},
		},
		{
			name:  "indentation wider than the limit still splits per word",
			lines: []string{"            a b"},
			max:   8,
			want:  []string{"            a", "            b"},
		},
		{
			name:  "spaces inside a quoted value are not split points",
			lines: []string{`<root attr="alpha beta gamma delta epsilon zeta eta theta"/>`},
			max:   40,
			want: []string{
				"<root",
				`attr="alpha beta gamma delta epsilon zeta eta theta"/>`,
			},
		},
		{
			name:  "cdata section stays whole",
			lines: []string{"    <![CDATA[alpha beta gamma delta epsilon zeta eta]]>"},
			max:   40,
			want:  []string{"    <![CDATA[alpha beta gamma delta epsilon zeta eta]]>"},
		},
		{
			name:  "comment stays whole",
			lines: []string{"    <!-- lorem ipsum dolor sit amet consectetur adipiscing -->"},
			max:   40,
			want:  []string{"    <!-- lorem ipsum dolor sit amet consectetur adipiscing -->"},
		},
		{
			name:  "over-long token goes alone and the tail wraps",
			lines: []string{"    seventy-characters-of-unbreakable-token-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa and a tail"},
			max:   30,
			want: []string{
				"    seventy-characters-of-unbreakable-token-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				"    and a tail",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLines(tt.lines, tt.max))
		})
	}
}

// Wrapped output must respect the limit except for lines holding one
// unbreakable token.
func TestWrapLinesWidthBound(t *testing.T) {
	const max = 30
	input := []string{
		"    " + strings.Repeat("word ", 40) + "end",
		"    token-way-longer-than-the-configured-limit trailing words here",
	}
	for _, line := range wrapLines(input, max) {
		if len(line) > max {
			trimmed := strings.TrimLeft(line, " ")
			assert.NotContains(t, trimmed, " ",
				"over-long line %q must consist of a single unbreakable token", line)
		}
	}
}

func TestFindSplitPosition(t *testing.T) {
	// Prefer the last space before the limit.
	pos, ok := findSplitPosition("aaaa bbbb cccc", 0, 10)
	assert.True(t, ok)
	assert.Equal(t, 9, pos)

	// Fall back to the first space after the limit.
	pos, ok = findSplitPosition("aaaaaaaaaaaa bb", 0, 10)
	assert.True(t, ok)
	assert.Equal(t, 12, pos)

	// Spaces inside the indentation do not count.
	pos, ok = findSplitPosition("    aaaaaaaaaa bb", 4, 10)
	assert.True(t, ok)
	assert.Equal(t, 14, pos)

	// Spaces inside a quoted value do not count.
	pos, ok = findSplitPosition(`<a b="x y z w" c="1"`, 0, 10)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	// A line whose spaces are all quoted has no split point.
	_, ok = findSplitPosition(`attr="aaaa bbbb cccc"`, 0, 10)
	assert.False(t, ok)

	// No space anywhere.
	_, ok = findSplitPosition("aaaaaaaaaaaaaaa", 0, 10)
	assert.False(t, ok)
}
