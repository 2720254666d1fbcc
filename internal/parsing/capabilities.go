package parsing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// capabilityObject is the short free-text object between a verb and its anchor noun
const capabilityObject = `([a-z0-9+#\-\s]{2,20})`

// capabilityPattern synthesizes a higher-level capability label from a verb phrase
type capabilityPattern struct {
	re    *regexp.Regexp
	label string
	// dynamic labels are prefixed with the title-cased object, e.g. "Inventory Systems Engineering"
	dynamic bool
	// maxObjectWords drops dynamic matches with longer objects; 0 means no limit
	maxObjectWords int
}

type capabilityMatch struct {
	Label string
	Start int
}

// Job descriptions phrase capabilities in the present tense.
var jobCapabilities = []capabilityPattern{
	{re: regexp.MustCompile(`(build|develop|create|integrate|implement)\s+` + capabilityObject + `\s+api`), label: "API Development"},
	{re: regexp.MustCompile(`(optimize|manage|integrate|scale)\s+` + capabilityObject + `\s+sql`), label: "Database Management"},
	{re: regexp.MustCompile(`(deploy|architect|manage|orchestrate)\s+` + capabilityObject + `\s+on\s+(aws|azure|gcp|cloud)`), label: "Cloud Architecture"},
	{re: regexp.MustCompile(`(train|build|optimize)\s+` + capabilityObject + `\s+model`), label: "ML Engineering"},
	{re: regexp.MustCompile(`(automate|design|execute|write)\s+` + capabilityObject + `\s+tests?`), label: "Test Automation"},
	{re: regexp.MustCompile(`(develop|architect|engineer|build)\s+([a-z0-9+#\-\s]{3,25})\s+(system|application|app|service|tool)`), label: "Systems Engineering", dynamic: true, maxObjectWords: 3},
}

// Resumes describe the same capabilities in the past tense.
var resumeCapabilities = []capabilityPattern{
	{re: regexp.MustCompile(`(built|developed|created|integrated|implemented)\s+` + capabilityObject + `\s+api`), label: "API Development"},
	{re: regexp.MustCompile(`(optimized|managed|integrated|scaled)\s+` + capabilityObject + `\s+sql`), label: "Database Management"},
	{re: regexp.MustCompile(`(deployed|architected|managed|orchestrated)\s+` + capabilityObject + `\s+on\s+(aws|azure|gcp|cloud)`), label: "Cloud Architecture"},
	{re: regexp.MustCompile(`(trained|built|optimized)\s+` + capabilityObject + `\s+model`), label: "ML Engineering"},
	{re: regexp.MustCompile(`(automated|designed|executed|wrote)\s+` + capabilityObject + `\s+tests?`), label: "Test Automation"},
	{re: regexp.MustCompile(`(built|developed|created|architected|implemented|integrated)\s+([a-z0-9+#\-\s]{3,25})\s+(system|application|app|service|tool)`), label: "Systems Engineering", dynamic: true},
}

// findCapabilities runs every pattern over lowercased text. Matches from different
// patterns may overlap and are all reported, in pattern order.
func findCapabilities(lower string, patterns []capabilityPattern) []capabilityMatch {
	var out []capabilityMatch
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(lower, -1) {
			label, ok := p.labelFor(lower[loc[4]:loc[5]])
			if !ok {
				continue
			}
			out = append(out, capabilityMatch{Label: label, Start: loc[0]})
		}
	}
	return out
}

func (p capabilityPattern) labelFor(object string) (string, bool) {
	if !p.dynamic {
		return p.label, true
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return "", false
	}
	if p.maxObjectWords > 0 && len(strings.Fields(object)) > p.maxObjectWords {
		return "", false
	}
	// Casers carry state and are not shared across goroutines.
	return cases.Title(language.English).String(object) + " " + p.label, true
}
