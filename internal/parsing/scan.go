package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/matchly/internal/textmatch"
)

// taxonomyHit is one taxonomy term found in text
type taxonomyHit struct {
	Term     string
	Skill    string
	Category string
	Index    int
}

// scanTaxonomy finds every taxonomy term in lowercased text, in category order.
// A term listed under two categories yields one hit per category.
func (n *Normalizer) scanTaxonomy(lower string) []taxonomyHit {
	var hits []taxonomyHit
	for _, c := range n.tax.Categories() {
		for _, term := range c.Skills {
			idx := textmatch.Index(lower, term)
			if idx < 0 {
				continue
			}
			hits = append(hits, taxonomyHit{
				Term:     term,
				Skill:    n.Normalize(term),
				Category: c.Name,
				Index:    idx,
			})
		}
	}
	return hits
}

// snippet returns text around idx with newlines flattened, wrapped in ellipses.
// Bounds are widened to rune boundaries.
func snippet(text string, idx, before, after int) string {
	start := max(0, idx-before)
	end := min(len(text), idx+after)
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	s := strings.ReplaceAll(text[start:end], "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return "..." + s + "..."
}

// appendUnique appends values not already present in seen
func appendUnique(dst []string, seen map[string]struct{}, values ...string) []string {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
