// File: internal/formatter/behavior.go
package formatter

import "strings"

// Behavior decides how an element is distributed over output lines.
type Behavior int

const (
	// Container elements force their start tag, content and end tag onto
	// separate lines, with the content indented one level.
	Container Behavior = iota
	// Semicontainer elements force their start tag onto a new line but keep
	// the content and end tag attached to it where possible.
	Semicontainer
	// Inline elements never force a line break and flow with the
	// surrounding content.
	Inline
)

// String returns the lower-case name used in configuration files and flags.
func (b Behavior) String() string {
	switch b {
	case Container:
		return "container"
	case Semicontainer:
		return "semicontainer"
	case Inline:
		return "inline"
	}
	return "unknown"
}

// ParseBehavior maps a configuration value to a Behavior. Matching is
// case-insensitive.
func ParseBehavior(name string) (Behavior, error) {
	switch strings.ToLower(name) {
	case "container":
		return Container, nil
	case "semicontainer":
		return Semicontainer, nil
	case "inline":
		return Inline, nil
	}
	return Container, &ConfigurationError{
		Option: "default_behavior",
		Reason: "must be one of container, semicontainer, inline (got " + name + ")",
	}
}

// Classifier resolves a tag name to its layout behavior. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	fallback  Behavior
	overrides map[string]Behavior
}

// NewClassifier builds a classifier from per-behavior tag name lists. A tag
// name listed under two different behaviors is a configuration error.
func NewClassifier(fallback Behavior, container, semicontainer, inline []string) (*Classifier, error) {
	overrides := make(map[string]Behavior)
	add := func(tags []string, b Behavior) error {
		for _, tag := range tags {
			if tag == "" {
				return &ConfigurationError{
					Option: b.String() + "_elements",
					Reason: "contains an empty tag name",
				}
			}
			if prev, ok := overrides[tag]; ok && prev != b {
				return &ConfigurationError{
					Option: b.String() + "_elements",
					Reason: "tag " + tag + " is already classified as " + prev.String(),
				}
			}
			overrides[tag] = b
		}
		return nil
	}
	if err := add(container, Container); err != nil {
		return nil, err
	}
	if err := add(semicontainer, Semicontainer); err != nil {
		return nil, err
	}
	if err := add(inline, Inline); err != nil {
		return nil, err
	}
	return &Classifier{fallback: fallback, overrides: overrides}, nil
}

// Classify returns the behavior for a tag name. It is total: unknown names
// resolve to the configured fallback.
func (c *Classifier) Classify(tag string) Behavior {
	if b, ok := c.overrides[tag]; ok {
		return b
	}
	return c.fallback
}
