// File: internal/formatter/formatter.go

// Package formatter renders a parsed XML document tree into indented,
// line-wrapped text. Layout follows three per-element behaviors: container
// elements get their tags and content on separate lines, semicontainer
// elements start on a fresh line but keep their content attached, and inline
// elements flow with the surrounding text. All whitespace in the output is
// derived from the indentation and wrapping rules; whitespace that only
// shaped the layout of the input document is discarded.
package formatter

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/internal/config"
)

// Formatter renders documents under one fixed configuration. It is immutable
// after construction and safe for concurrent use across documents; every
// Format call carries its own layout state.
type Formatter struct {
	cfg        config.FormatConfig
	classifier *Classifier
}

// New validates the configuration and builds a Formatter. All configuration
// problems surface here, before any document is touched.
func New(cfg config.FormatConfig) (*Formatter, error) {
	if cfg.Indentation < 0 {
		return nil, &ConfigurationError{Option: "indentation", Reason: "must not be negative"}
	}
	fallback, err := ParseBehavior(cfg.DefaultBehavior)
	if err != nil {
		return nil, err
	}
	classifier, err := NewClassifier(fallback, cfg.ContainerElements, cfg.SemicontainerElements, cfg.InlineElements)
	if err != nil {
		return nil, err
	}
	return &Formatter{cfg: cfg, classifier: classifier}, nil
}

// Classify exposes the behavior resolution for a tag name.
func (f *Formatter) Classify(tag string) Behavior {
	return f.classifier.Classify(tag)
}

// Format renders the document and returns the formatted text. The tree is
// read-only input; on error no output is returned.
//
// Rendering happens in two phases. The first walks the tree depth-first,
// appending markup fragments, linebreaks and indentation runs to a result
// buffer according to each node's behavior. The second collapses redundant
// blank lines and trailing whitespace and splits lines that exceed the
// configured maximum length.
func (f *Formatter) Format(doc *etree.Document) (string, error) {
	if doc == nil || doc.Root() == nil {
		return "", &StructuralError{Path: "/", Reason: "document has no root element"}
	}

	r := &render{
		f:    f,
		cfg:  f.cfg,
		seen: make(map[etree.Token]bool),
	}
	if err := r.processDocument(doc); err != nil {
		return "", err
	}
	return r.postprocess(), nil
}

// render is the per-call layout context: the result buffer, the current
// indentation level and the path of the node being processed. It is never
// shared between Format calls.
type render struct {
	f     *Formatter
	cfg   config.FormatConfig
	parts []string
	level int
	path  []string
	seen  map[etree.Token]bool
}

// -- Result buffer --

func (r *render) append(s string) {
	r.parts = append(r.parts, s)
}

func (r *render) endsWithLinebreak() bool {
	n := len(r.parts)
	return n > 0 && strings.HasSuffix(r.parts[n-1], "\n")
}

func (r *render) endsWithWhitespace() bool {
	n := len(r.parts)
	if n == 0 {
		return false
	}
	last := r.parts[n-1]
	if last == "" {
		return false
	}
	switch last[len(last)-1] {
	case '\n', ' ', '\t', '\r':
		return true
	}
	return false
}

// -- Indentation accounting --

func (r *render) indentation() string {
	return strings.Repeat(" ", r.level*r.cfg.Indentation)
}

func (r *render) addIndentation() {
	r.append(r.indentation())
}

func (r *render) addLinebreak() {
	r.append("\n")
}

// -- Node dispatch --

func (r *render) processDocument(doc *etree.Document) error {
	decl := xmlDeclaration(doc)
	r.append(buildDeclaration(decl))

	for _, child := range doc.Child {
		if decl != nil && child == etree.Token(decl) {
			continue
		}
		if r.needsIndentation(child) {
			r.addIndentation()
		}
		if err := r.processNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (r *render) processNode(tok etree.Token) error {
	switch n := tok.(type) {
	case *etree.Element:
		return r.processElement(n)
	case *etree.CharData:
		if n.IsCData() {
			r.processCData(n)
		} else {
			r.processText(n)
		}
		return nil
	case *etree.Comment:
		r.processComment(n)
		return nil
	case *etree.ProcInst:
		r.processProcInst(n)
		return nil
	case *etree.Directive:
		r.processDirective(n)
		return nil
	default:
		return &StructuralError{Path: r.errorPath(), Reason: fmt.Sprintf("unsupported node type %T", tok)}
	}
}

func (r *render) processChildren(el *etree.Element) error {
	for _, child := range el.Child {
		if r.needsIndentation(child) {
			r.addIndentation()
		}
		if err := r.processNode(child); err != nil {
			return err
		}
	}
	return nil
}

// -- Elements --

func (r *render) processElement(el *etree.Element) error {
	if el.Tag == "" {
		return &StructuralError{Path: r.errorPath(), Reason: "element without a tag name"}
	}
	if r.seen[el] {
		return &StructuralError{
			Path:   r.errorPath() + "/" + el.Tag,
			Reason: "element appears more than once in the tree",
		}
	}
	r.seen[el] = true

	r.path = append(r.path, fmt.Sprintf("%s[%d]", el.Tag, el.Index()))
	defer func() { r.path = r.path[:len(r.path)-1] }()

	empty := isEmptyElement(el)
	switch r.f.classifier.Classify(el.Tag) {
	case Inline:
		if empty {
			r.emptyInlineElement(el)
			return nil
		}
		return r.nonemptyInlineElement(el)
	case Semicontainer:
		if empty {
			r.emptySemicontainerElement(el)
			return nil
		}
		return r.nonemptySemicontainerElement(el)
	default:
		if empty {
			r.emptyContainerElement(el)
			return nil
		}
		return r.nonemptyContainerElement(el)
	}
}

func (r *render) emptyInlineElement(el *etree.Element) {
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeEmptyTag()
}

func (r *render) nonemptyInlineElement(el *etree.Element) error {
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeStartTag()
	r.level++
	if err := r.processChildren(el); err != nil {
		return err
	}
	// Content that ended in a forced break leaves the end tag on a fresh
	// line, which then has to be indented.
	if r.endsWithLinebreak() {
		r.addIndentation()
	}
	r.level--
	r.appendEndTag(el)
	return nil
}

func (r *render) emptyContainerElement(el *etree.Element) {
	r.addLinebreak()
	r.addIndentation()
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeEmptyTag()
	r.addLinebreak()
}

func (r *render) nonemptyContainerElement(el *etree.Element) error {
	r.addLinebreak()
	r.addIndentation()
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeStartTag()
	r.level++
	r.addLinebreak()
	if err := r.processChildren(el); err != nil {
		return err
	}
	r.level--
	r.addLinebreak()
	r.addIndentation()
	r.appendEndTag(el)
	r.addLinebreak()
	return nil
}

func (r *render) emptySemicontainerElement(el *etree.Element) {
	r.addLinebreak()
	r.addIndentation()
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeEmptyTag()
}

func (r *render) nonemptySemicontainerElement(el *etree.Element) error {
	r.addLinebreak()
	r.addIndentation()
	r.openStartTag(el)
	r.appendAttributes(el)
	r.closeStartTag()
	r.level++
	if err := r.processChildren(el); err != nil {
		return err
	}
	if r.endsWithLinebreak() {
		r.addIndentation()
	}
	r.level--
	r.appendEndTag(el)
	return nil
}

// -- Text --

func (r *render) processText(cd *etree.CharData) {
	data := collapseWhitespace(cd.Data)
	if r.endsWithWhitespace() {
		data = strings.TrimLeft(data, " ")
	}
	r.append(escapeEntities(data))
}

func (r *render) processCData(cd *etree.CharData) {
	data := strings.TrimSpace(collapseWhitespace(cd.Data))
	r.append("<![CDATA[" + data + "]]>")
}

// -- Indentation placement --

// needsIndentation decides whether an indentation run precedes a child. A
// stray run that ends up at the end of a line is cleaned up by postprocessing,
// so over-approximating here is safe.
func (r *render) needsIndentation(child etree.Token) bool {
	return r.indentForFirstChild(child) &&
		r.indentAfterSpecialSibling(child) &&
		r.indentForText(child)
}

// indentForFirstChild: no indentation for the first child of a semicontainer
// or inline element, whose content starts directly after the start tag.
func (r *render) indentForFirstChild(child etree.Token) bool {
	if prevSibling(child) != nil {
		return true
	}
	parent := parentElement(child)
	if parent == nil {
		return true
	}
	b := r.f.classifier.Classify(parent.Tag)
	return b != Semicontainer && b != Inline
}

// indentAfterSpecialSibling: no indentation directly behind a semicontainer
// or inline element, which the following content attaches to.
func (r *render) indentAfterSpecialSibling(child etree.Token) bool {
	prev, ok := prevSibling(child).(*etree.Element)
	if !ok {
		return true
	}
	b := r.f.classifier.Classify(prev.Tag)
	return b != Semicontainer && b != Inline
}

// indentForText: no indentation between a text node and following text or an
// inline element; they belong to the same run.
func (r *render) indentForText(child etree.Token) bool {
	prev, ok := prevSibling(child).(*etree.CharData)
	if !ok || prev == nil {
		return true
	}
	switch c := child.(type) {
	case *etree.CharData:
		return false
	case *etree.Element:
		return r.f.classifier.Classify(c.Tag) != Inline
	}
	return true
}

func (r *render) errorPath() string {
	if len(r.path) == 0 {
		return "/"
	}
	return "/" + strings.Join(r.path, "/")
}

// -- Postprocessing --

func (r *render) postprocess() string {
	s := strings.Join(r.parts, "")
	s = removeTrailingSpace(s)
	s = removeEmptyLines(s)
	s = strings.TrimSpace(s)

	lines := wrapLines(strings.Split(s, "\n"), r.cfg.MaxLineLength)
	return strings.Join(lines, "\n")
}

// -- Tree helpers --

// prevSibling returns the child immediately before tok under its parent, or
// nil for a first child or a detached token.
func prevSibling(tok etree.Token) etree.Token {
	parent := tok.Parent()
	if parent == nil {
		return nil
	}
	i := tok.Index()
	if i <= 0 {
		return nil
	}
	return parent.Child[i-1]
}

// parentElement returns the parent as a real element, or nil when the parent
// is the document itself.
func parentElement(tok etree.Token) *etree.Element {
	parent := tok.Parent()
	if parent == nil || parent.Tag == "" {
		return nil
	}
	return parent
}

// isEmptyElement reports whether an element renders as a self-closing tag.
// Children that carry no renderable content, i.e. whitespace-only text and
// empty CDATA sections, do not count.
func isEmptyElement(el *etree.Element) bool {
	for _, child := range el.Child {
		cd, ok := child.(*etree.CharData)
		if !ok || !cd.IsWhitespace() {
			return false
		}
	}
	return true
}
