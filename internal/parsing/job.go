package parsing

import (
	"strings"

	"github.com/jonathan/matchly/internal/classify"
	"github.com/jonathan/matchly/internal/types"
)

// frameworkCategories feed ParsedJobDescription.FrameworksAndTools, in this order
var frameworkCategories = []string{"frontend", "backend", "devops", "testing", "collaboration"}

// JobExtractor turns job description text into structured requirements
type JobExtractor struct {
	norm       *Normalizer
	classifier *classify.Classifier
}

// NewJobExtractor creates a job description extractor
func NewJobExtractor(norm *Normalizer, classifier *classify.Classifier) *JobExtractor {
	if norm == nil {
		norm = NewNormalizer(nil)
	}
	if classifier == nil {
		classifier = classify.New()
	}
	return &JobExtractor{norm: norm, classifier: classifier}
}

// Extract parses a job description. Text with no IT signal yields a job
// description carrying the rejection sentinel (see ParsedJobDescription.Rejected)
// and no requirements. All lists are deduplicated in first-seen order.
func (e *JobExtractor) Extract(text string) *types.ParsedJobDescription {
	result := e.classifier.Classify(text)
	if result.Rejected {
		return rejectedJob()
	}

	lower := strings.ToLower(text)

	// 1. Taxonomy terms, grouped by category
	seenAll := make(map[string]struct{})
	var all []string
	byCategory := make(map[string][]string)
	seenByCategory := make(map[string]map[string]struct{})
	for _, h := range e.norm.scanTaxonomy(lower) {
		all = appendUnique(all, seenAll, h.Skill)
		if seenByCategory[h.Category] == nil {
			seenByCategory[h.Category] = make(map[string]struct{})
		}
		byCategory[h.Category] = appendUnique(byCategory[h.Category], seenByCategory[h.Category], h.Skill)
	}

	frameworks := []string{}
	seenFramework := make(map[string]struct{})
	for _, c := range frameworkCategories {
		frameworks = appendUnique(frameworks, seenFramework, byCategory[c]...)
	}

	// 2. Capability phrases fold into the required skills after taxonomy terms
	required := append([]string{}, all...)
	seenRequired := make(map[string]struct{}, len(all))
	for _, s := range all {
		seenRequired[s] = struct{}{}
	}
	for _, m := range findCapabilities(lower, jobCapabilities) {
		required = appendUnique(required, seenRequired, m.Label)
	}

	responsibilities := extractResponsibilities(text)
	if len(responsibilities) == 0 {
		responsibilities = []string{types.DefaultResponsibility}
	}

	return &types.ParsedJobDescription{
		JobTitle:               types.AcceptedJobTitle,
		JobType:                result.Domain,
		RequiredSkills:         required,
		FrameworksAndTools:     frameworks,
		Databases:              orEmpty(byCategory["databases"]),
		CloudPlatforms:         orEmpty(byCategory["cloud"]),
		MinimumExperienceYears: RequiredYears(lower),
		ATSKeywords:            orEmpty(all),
		Responsibilities:       responsibilities,
	}
}

func rejectedJob() *types.ParsedJobDescription {
	return &types.ParsedJobDescription{
		JobTitle:           types.RejectedJobTitle,
		JobType:            types.JobTypeUnknown,
		RequiredSkills:     []string{},
		FrameworksAndTools: []string{},
		Databases:          []string{},
		CloudPlatforms:     []string{},
		ATSKeywords:        []string{},
		Responsibilities:   []string{},
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var responsibilityHeadings = []string{
	"responsibilities", "key responsibilities", "your responsibilities", "duties",
	"what you will do", "what you'll do", "the role",
}

const maxResponsibilities = 10

// extractResponsibilities collects bullet lines under a responsibilities heading
func extractResponsibilities(text string) []string {
	var out []string
	in := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		heading := strings.TrimRight(strings.ToLower(line), ": ")
		if isResponsibilityHeading(heading) {
			in = true
			continue
		}
		if !in {
			continue
		}
		if line == "" {
			if len(out) > 0 {
				in = false
			}
			continue
		}
		item, ok := bulletText(line)
		if !ok {
			// a non-bullet line ends the list once it has started
			if len(out) > 0 {
				in = false
			}
			continue
		}
		out = append(out, item)
		if len(out) == maxResponsibilities {
			break
		}
	}
	return out
}

func isResponsibilityHeading(s string) bool {
	for _, h := range responsibilityHeadings {
		if s == h {
			return true
		}
	}
	return false
}

func bulletText(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}
	// numbered items: "1. ", "2) "
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return strings.TrimSpace(line[i+2:]), true
	}
	return "", false
}
