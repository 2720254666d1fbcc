// Package textmatch provides boundary-aware term search over lowercased text.
//
// Plain terms match on regexp word boundaries, except that an occurrence directly
// followed by '+' or '#' is rejected so "c" does not match inside "c++" or "c#".
// Terms containing '+', '#' or '.' (c++, c#, node.js, .net core) have no clean
// word boundary, so they match anywhere the neighbouring bytes are not part of a
// token: letters, digits, '_', '+' and '#' extend a token, anything else ends it.
// Boundaries are checked on the match indices, so a delimiter shared by two
// adjacent occurrences is never consumed.
package textmatch

import (
	"regexp"
	"strings"
	"sync"
)

var patterns sync.Map // term -> *regexp.Regexp

// Pattern returns the compiled boundary-aware pattern for term.
// The term is captured as group 1.
func Pattern(term string) *regexp.Regexp {
	if re, ok := patterns.Load(term); ok {
		return re.(*regexp.Regexp)
	}

	quoted := regexp.QuoteMeta(term)
	var expr string
	if HasSymbols(term) {
		expr = `(` + quoted + `)`
	} else {
		expr = `\b(` + quoted + `)\b`
	}

	re := regexp.MustCompile(expr)
	actual, _ := patterns.LoadOrStore(term, re)
	return actual.(*regexp.Regexp)
}

// HasSymbols reports whether term needs punctuation boundaries instead of word boundaries
func HasSymbols(term string) bool {
	return strings.ContainsAny(term, "+#.")
}

// Contains reports whether text contains term as a whole token
func Contains(text, term string) bool {
	return len(find(text, term, 1)) > 0
}

// Index returns the byte offset of the first whole-token occurrence of term, or -1
func Index(text, term string) int {
	if idx := find(text, term, 1); len(idx) > 0 {
		return idx[0]
	}
	return -1
}

// IndexAll returns the byte offsets of all non-overlapping whole-token occurrences of term
func IndexAll(text, term string) []int {
	return find(text, term, -1)
}

func find(text, term string, limit int) []int {
	if term == "" {
		return nil
	}
	re := Pattern(term)
	symbols := HasSymbols(term)

	var out []int
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[2], loc[3]
		if symbols {
			if (start > 0 && isTokenByte(text[start-1])) || (end < len(text) && isTokenByte(text[end])) {
				continue
			}
		} else if end < len(text) && (text[end] == '+' || text[end] == '#') {
			continue
		}
		out = append(out, start)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func isTokenByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '+' || b == '#':
		return true
	}
	return b >= 0x80
}
