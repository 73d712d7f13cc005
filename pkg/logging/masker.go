package logging

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Redacted replaces logged values whose target description matches a
// redaction pattern.
const Redacted = "********"

// Masker handles glob pattern matching for sensitive value redaction.
// Patterns are matched case-insensitively against the description of
// the element receiving a value, e.g. "*password*" hides everything
// typed into targets described as password fields.
type Masker struct {
	patterns []glob.Glob
}

// NewMasker creates a new masker from glob patterns
func NewMasker(patterns []string) (*Masker, error) {
	m := &Masker{}

	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern '%s': %w", pattern, err)
		}
		m.patterns = append(m.patterns, g)
	}

	return m, nil
}

// ShouldMask returns true if values for the described target must be
// hidden from logs
func (m *Masker) ShouldMask(description string) bool {
	if m == nil {
		return false
	}

	description = strings.ToLower(description)
	for _, pattern := range m.patterns {
		if pattern.Match(description) {
			return true
		}
	}

	return false
}

// Mask returns the value unchanged, or the Redacted marker when the
// described target matches a redaction pattern
func (m *Masker) Mask(description, value string) string {
	if m.ShouldMask(description) {
		return Redacted
	}
	return value
}
