// Package parsing turns raw resume and job description text into structured
// skill evidence and requirement lists.
package parsing

import (
	"strings"

	"github.com/jonathan/matchly/internal/taxonomy"
)

// OtherCategory is reported for skills outside the taxonomy
const OtherCategory = "other"

// Normalizer canonicalizes free-form skill names against a taxonomy and its alias table
type Normalizer struct {
	tax *taxonomy.Taxonomy
}

// NewNormalizer creates a normalizer. A nil taxonomy selects the built-in one.
func NewNormalizer(tax *taxonomy.Taxonomy) *Normalizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Normalizer{tax: tax}
}

// Taxonomy returns the taxonomy backing this normalizer
func (n *Normalizer) Taxonomy() *taxonomy.Taxonomy {
	return n.tax
}

// Normalize returns the canonical form of a skill name.
// Known aliases map to their canonical value; everything else is returned trimmed
// and lowercased, so unrecognized skills pass through rather than being dropped.
// Normalize is idempotent.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}
	if canonical, ok := n.tax.Alias(cleaned); ok {
		return canonical
	}
	return cleaned
}

// Category returns the taxonomy category of the normalized skill, or OtherCategory
func (n *Normalizer) Category(raw string) string {
	if c, ok := n.tax.CategoryOf(n.Normalize(raw)); ok {
		return c
	}
	return OtherCategory
}

// NormalizeAll normalizes every entry, preserving order and duplicates
func (n *Normalizer) NormalizeAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = n.Normalize(r)
	}
	return out
}

// Unique normalizes entries and drops empties and duplicates, keeping first-seen order
func (n *Normalizer) Unique(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		s := n.Normalize(r)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
