// File: internal/formatter/errors.go
package formatter

import "fmt"

// ConfigurationError reports an invalid formatting configuration. It is
// returned by New before any rendering begins, so a formatter with an invalid
// configuration can never produce partial output.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid formatter configuration: %s: %s", e.Option, e.Reason)
}

// StructuralError reports an input tree that violates the renderer's
// structural assumptions, such as an element without a tag name or a node that
// appears twice on one root-to-leaf walk. Path locates the offending node.
type StructuralError struct {
	Path   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed document tree at %s: %s", e.Path, e.Reason)
}
