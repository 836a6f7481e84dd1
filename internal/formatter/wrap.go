// File: internal/formatter/wrap.go
package formatter

import "strings"

// wrapLines splits every line longer than max, greedily packing as much as
// fits per line. Splitting happens only at space characters outside quoted
// values, CDATA sections and comments, so a break can never land inside a tag
// delimiter, an attribute value or any other contiguous token. Continuation
// lines re-use the leading indentation of the line they were split from. A
// non-positive max disables wrapping.
func wrapLines(lines []string, max int) []string {
	if max <= 0 {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]

		for len(line) > max {
			splitAt, ok := findSplitPosition(line, len(indent), max)
			if !ok {
				// A single unbreakable token longer than the limit
				// stays on its own line unmodified.
				break
			}

			head := strings.TrimRight(line[:splitAt], " \t")
			rest := indent + strings.TrimLeft(line[splitAt+1:], " \t")

			// Guard against degenerate splits that cannot shrink the line.
			if len(rest) >= len(line) {
				break
			}

			out = append(out, head)
			line = rest
		}

		out = append(out, line)
	}
	return out
}

// findSplitPosition picks the space to break at: the last legal one before
// the limit if any, otherwise the first legal one after it. Spaces inside the
// leading indentation, a quoted value, a CDATA section or a comment are never
// split points.
func findSplitPosition(line string, from, max int) (int, bool) {
	breakable := breakableSpaces(line, from)
	if from < max {
		for i := max - 1; i >= from; i-- {
			if breakable[i] {
				return i, true
			}
		}
	}
	start := max
	if from > start {
		start = from
	}
	for i := start; i < len(line); i++ {
		if breakable[i] {
			return i, true
		}
	}
	return 0, false
}

// breakableSpaces marks the spaces a line may break at. Quoted regions keep
// attribute values and doctype identifiers whole; CDATA sections and comments
// are opaque tokens that are never split internally.
func breakableSpaces(line string, from int) []bool {
	breakable := make([]bool, len(line))
	inQuote := false
	for i := from; i < len(line); {
		if !inQuote {
			if strings.HasPrefix(line[i:], "<![CDATA[") {
				end := strings.Index(line[i:], "]]>")
				if end == -1 {
					return breakable
				}
				i += end + 3
				continue
			}
			if strings.HasPrefix(line[i:], "<!--") {
				end := strings.Index(line[i:], "-->")
				if end == -1 {
					return breakable
				}
				i += end + 3
				continue
			}
		}
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ' ':
			if !inQuote {
				breakable[i] = true
			}
		}
		i++
	}
	return breakable
}
