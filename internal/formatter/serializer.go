// File: internal/formatter/serializer.go
package formatter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

var (
	pseudoAttrPattern = regexp.MustCompile(`(\w+)\s*=\s*["']([^"']*)["']`)
	doctypePattern    = regexp.MustCompile(`(?s)^\s*DOCTYPE\s+(\S+)\s*(.*)$`)
	// The constituents of a doctype internal subset per XML 1.0: markup
	// declarations, comments, processing instructions and PE references.
	subsetPartPattern = regexp.MustCompile(`(?s)<!ELEMENT[^>]*?>|<!ENTITY[^>]*?>|<!ATTLIST[^>]*?>|<!NOTATION[^>]*?>|<!--.*?-->|<\?.*?\?>|%\w+;`)
)

// -- Tags and attributes --

func (r *render) openStartTag(el *etree.Element) {
	r.append("<" + el.FullTag())
}

func (r *render) closeStartTag() {
	r.append(">")
}

// closeEmptyTag closes a childless element. Empty elements always self-close;
// a reparse yields the same childless element either way.
func (r *render) closeEmptyTag() {
	r.append("/>")
}

func (r *render) appendEndTag(el *etree.Element) {
	r.append("</" + el.FullTag() + ">")
}

// appendAttributes emits each attribute as one ` name="value"` fragment in
// document order, or sorted by name when configured. Each fragment is a
// single unbreakable word for the line wrapper.
func (r *render) appendAttributes(el *etree.Element) {
	attrs := el.Attr
	if r.cfg.SortedAttributes && len(attrs) > 1 {
		attrs = append([]etree.Attr(nil), el.Attr...)
		sort.SliceStable(attrs, func(i, j int) bool {
			return attrs[i].FullKey() < attrs[j].FullKey()
		})
	}
	for _, a := range attrs {
		r.append(" " + a.FullKey() + `="` + escapeEntities(a.Value) + `"`)
	}
}

// -- Comments and processing instructions --

func (r *render) processComment(c *etree.Comment) {
	newline, indent := "", ""
	if r.cfg.CommentsStartNewLines {
		newline = "\n"
		indent = r.indentation()
	}
	start, end := "<!--", "-->"
	if r.cfg.CommentsHaveTrailingSpaces {
		start, end = "<!-- ", " -->"
	}
	data := strings.TrimSpace(collapseWhitespace(c.Data))
	r.append(newline + indent + start + data + end + newline)
}

func (r *render) processProcInst(pi *etree.ProcInst) {
	newline, indent := "", ""
	if r.cfg.PIsStartNewLines {
		newline = "\n"
		indent = r.indentation()
	}
	data := strings.TrimSpace(collapseWhitespace(pi.Inst))
	if data != "" {
		data = " " + data
	}
	r.append(newline + indent + "<?" + pi.Target + data + "?>" + newline)
}

// -- Document type declarations --

func (r *render) processDirective(d *etree.Directive) {
	newline := ""
	if r.cfg.DoctypeStartsNewLine {
		newline = "\n"
	}

	m := doctypePattern.FindStringSubmatch(d.Data)
	if m == nil {
		// Any other directive passes through with normalized whitespace.
		r.append(newline + "<!" + strings.TrimSpace(collapseWhitespace(d.Data)) + ">" + newline)
		return
	}

	name, rest := m[1], strings.TrimSpace(m[2])
	externalID, subset := splitDoctypeRest(rest)

	out := "<!DOCTYPE " + name
	if externalID != "" {
		out += " " + collapseWhitespace(externalID)
	}
	out += r.formatInternalSubset(subset)
	out += ">"
	r.append(newline + out + newline)
}

// splitDoctypeRest separates the external identifier from the bracketed
// internal subset of a doctype declaration.
func splitDoctypeRest(rest string) (externalID, subset string) {
	i := strings.Index(rest, "[")
	if i < 0 {
		return strings.TrimSpace(rest), ""
	}
	externalID = strings.TrimSpace(rest[:i])
	subset = rest[i+1:]
	if j := strings.LastIndex(subset, "]"); j >= 0 {
		subset = subset[:j]
	}
	return externalID, strings.TrimSpace(subset)
}

// formatInternalSubset renders the internal subset, either verbatim on one
// line or with every declaration on its own indented line.
func (r *render) formatInternalSubset(subset string) string {
	if subset == "" {
		return ""
	}
	if !r.cfg.DoctypeSubsetPartsStartNewLines {
		return " [" + subset + "]"
	}

	r.level++
	indent := r.indentation()
	r.level--

	parts := subsetPartPattern.FindAllString(subset, -1)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, indent+strings.TrimSpace(part))
	}
	return " [\n" + strings.Join(lines, "\n") + "\n]"
}

// -- XML declaration --

// xmlDeclaration finds the document's declaration, which etree parses as a
// processing instruction targeting "xml" before the root element.
func xmlDeclaration(doc *etree.Document) *etree.ProcInst {
	for _, child := range doc.Child {
		switch n := child.(type) {
		case *etree.ProcInst:
			if n.Target == "xml" {
				return n
			}
		case *etree.Element:
			return nil
		}
	}
	return nil
}

// buildDeclaration renders a normalized XML declaration. Missing pieces fall
// back to version 1.0 and UTF-8; standalone only appears when the input
// declared it.
func buildDeclaration(decl *etree.ProcInst) string {
	version, encoding, standalone := "1.0", "UTF-8", ""
	if decl != nil {
		for _, m := range pseudoAttrPattern.FindAllStringSubmatch(decl.Inst, -1) {
			if m[2] == "" {
				continue
			}
			switch m[1] {
			case "version":
				version = m[2]
			case "encoding":
				encoding = m[2]
			case "standalone":
				standalone = m[2]
			}
		}
	}

	out := `<?xml version="` + version + `" encoding="` + encoding + `"`
	if standalone != "" {
		out += ` standalone="` + standalone + `"`
	}
	return out + "?>\n"
}
