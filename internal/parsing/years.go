package parsing

import (
	"regexp"
	"strconv"
)

const (
	// DefaultRequiredYears applies when a job description states no experience requirement
	DefaultRequiredYears = 2
	// maxPlausibleYears filters calendar years and other numbers that are not experience spans
	maxPlausibleYears = 35
)

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

// RequiredYears returns the first "N years" figure in the text, or DefaultRequiredYears
func RequiredYears(lower string) int {
	m := yearsPattern.FindStringSubmatch(lower)
	if m == nil {
		return DefaultRequiredYears
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultRequiredYears
	}
	return n
}

// CandidateYears returns the largest plausible "N years" figure in the text, or 0
func CandidateYears(lower string) float64 {
	best := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(lower, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n >= maxPlausibleYears {
			continue
		}
		if n > best {
			best = n
		}
	}
	return float64(best)
}
