// Package taxonomy holds the immutable IT skill taxonomy and alias table used by
// the normalizer, the domain classifier and the semantic matcher.
package taxonomy

import (
	"fmt"
	"strings"
	"sync"
)

// Category is a named cluster of related canonical skills
type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Taxonomy is an ordered, read-only mapping of category to skills plus an alias table.
// It is safe for concurrent use because nothing mutates it after construction.
type Taxonomy struct {
	categories []Category
	members    map[string]map[string]struct{}
	firstCat   map[string]string
	skills     []string
	aliases    map[string]string
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the built-in taxonomy. The same instance is returned on every call.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := New(defaultCategories, defaultAliases)
		if err != nil {
			panic(fmt.Sprintf("taxonomy: built-in data is invalid: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// New builds a taxonomy from ordered categories and an alias table.
// Skills and alias keys are trimmed and lowercased; empty entries are skipped.
func New(categories []Category, aliases map[string]string) (*Taxonomy, error) {
	t := &Taxonomy{
		members:  make(map[string]map[string]struct{}, len(categories)),
		firstCat: make(map[string]string),
		aliases:  make(map[string]string, len(aliases)),
	}
	seenSkill := make(map[string]struct{})

	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, &Error{Message: fmt.Sprintf("category %d has no name", i)}
		}
		if _, dup := t.members[name]; dup {
			return nil, &Error{Message: fmt.Sprintf("duplicate category %q", name)}
		}

		set := make(map[string]struct{}, len(c.Skills))
		cleaned := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			s = clean(s)
			if s == "" {
				continue
			}
			if _, ok := set[s]; ok {
				continue
			}
			set[s] = struct{}{}
			cleaned = append(cleaned, s)
			if _, ok := t.firstCat[s]; !ok {
				t.firstCat[s] = name
			}
			if _, ok := seenSkill[s]; !ok {
				seenSkill[s] = struct{}{}
				t.skills = append(t.skills, s)
			}
		}
		t.members[name] = set
		t.categories = append(t.categories, Category{Name: name, Skills: cleaned})
	}

	for k, v := range aliases {
		k, v = clean(k), clean(v)
		if k == "" || v == "" {
			continue
		}
		t.aliases[k] = v
	}

	// Alias targets must be fixed points so normalization stays idempotent.
	for k, v := range t.aliases {
		if next, ok := t.aliases[v]; ok && next != v {
			return nil, &Error{Message: fmt.Sprintf("alias %q -> %q chains to %q", k, v, next)}
		}
	}

	return t, nil
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Categories returns a copy of the categories in lookup order
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// CategoryNames returns category names in lookup order
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// CategorySkills returns the skills of one category, or nil if it does not exist
func (t *Taxonomy) CategorySkills(name string) []string {
	for _, c := range t.categories {
		if c.Name == name {
			return append([]string(nil), c.Skills...)
		}
	}
	return nil
}

// Skills returns every distinct skill in first-seen category order
func (t *Taxonomy) Skills() []string {
	return append([]string(nil), t.skills...)
}

// Contains reports whether skill appears verbatim in any category
func (t *Taxonomy) Contains(skill string) bool {
	_, ok := t.firstCat[skill]
	return ok
}

// CategoryOf returns the first category containing skill
func (t *Taxonomy) CategoryOf(skill string) (string, bool) {
	c, ok := t.firstCat[skill]
	return c, ok
}

// InCategory reports whether skill belongs to the named category
func (t *Taxonomy) InCategory(category, skill string) bool {
	_, ok := t.members[category][skill]
	return ok
}

// SharedCategory returns the first category, in lookup order, that contains both a and b
func (t *Taxonomy) SharedCategory(a, b string) (string, bool) {
	for _, c := range t.categories {
		set := t.members[c.Name]
		if _, ok := set[a]; !ok {
			continue
		}
		if _, ok := set[b]; ok {
			return c.Name, true
		}
	}
	return "", false
}

// Alias returns the canonical skill for a known variant
func (t *Taxonomy) Alias(variant string) (string, bool) {
	v, ok := t.aliases[variant]
	return v, ok
}

// AliasCount returns the number of alias entries
func (t *Taxonomy) AliasCount() int {
	return len(t.aliases)
}
