// Package classify scores free text against per-domain keyword tables to decide
// which technical domain a job description belongs to, rejecting non-IT text.
package classify

import (
	"strings"

	"github.com/jonathan/matchly/internal/textmatch"
	"github.com/jonathan/matchly/internal/types"
)

// Domain pairs a job type with the keywords that signal it
type Domain struct {
	Type     types.JobType
	Keywords []string
}

// defaultDomains is listed in tie-break priority order
var defaultDomains = []Domain{
	{Type: types.JobTypeSoftware, Keywords: []string{"react", "frontend", "backend", "fullstack", "javascript", "typescript", "python", "java", "golang", "node", "api", "microservice", "web", "coding", "software", "developer"}},
	{Type: types.JobTypeData, Keywords: []string{"data", "sql", "spark", "hadoop", "etl", "bi", "warehouse", "analytics", "dashboard", "database", "pipeline"}},
	{Type: types.JobTypeAI, Keywords: []string{"scientist", "machine learning", "ml", "nlp", "tensorflow", "pytorch", "ai", "artificial intelligence", "model", "train", "vision", "deep learning"}},
	{Type: types.JobTypeDevOps, Keywords: []string{"devops", "kubernetes", "docker", "terraform", "ansible", "jenkins", "cicd", "ci/cd", "pipeline", "orchestration", "k8s"}},
	{Type: types.JobTypeCloud, Keywords: []string{"aws", "azure", "gcp", "cloud", "infrastructure", "server", "linux", "network", "ec2", "s3", "lambda", "sre"}},
	{Type: types.JobTypeQA, Keywords: []string{"qa", "tester", "automation", "selenium", "cypress", "testing", "quality", "unit test", "manual test"}},
	{Type: types.JobTypeSecurity, Keywords: []string{"cyber", "security", "pentest", "soc", "firewall", "encryption", "vulnerability", "compliance", "threat", "vulnerabilities", "audit"}},
}

// substringKeywords match anywhere in the text: word stems with no clean
// boundary ("model" in "models") and symbol-bearing tokens.
var substringKeywords = map[string]bool{
	"model": true, "test": true, "develop": true, "deploy": true,
	"analyt": true, "vulnerab": true, "automat": true,
	"ci/cd": true, "c++": true, "c#": true, "ui": true, "qa": true,
}

// itMarkers is the broad secondary guard consulted when no domain keyword hits.
// Matched as plain substrings.
var itMarkers = []string{
	"software", "develop", "engineer", "tech", "stack", "programming", "code", "it ",
	"qa", "testing", "security", "cyber", "devops", "sre", "cloud", "data", "analyst", "architect",
}

// Result is the outcome of classifying one text
type Result struct {
	Domain       types.JobType
	Rejected     bool
	Scores       map[types.JobType]int
	HasITMarkers bool
}

// Classifier assigns a job domain to free text. It holds only read-only tables.
type Classifier struct {
	domains []Domain
	markers []string
}

// New creates a classifier with the built-in domain tables
func New() *Classifier {
	return &Classifier{domains: defaultDomains, markers: itMarkers}
}

// Domains returns the domain table in priority order
func (c *Classifier) Domains() []Domain {
	out := make([]Domain, len(c.domains))
	for i, d := range c.domains {
		out[i] = Domain{Type: d.Type, Keywords: append([]string(nil), d.Keywords...)}
	}
	return out
}

// Classify counts keyword hits per domain. Each keyword contributes at most once.
// The highest count wins, ties going to the earlier domain. Text with no keyword
// hits and no IT markers is rejected with domain "unknown"; text with markers but
// no keyword hits defaults to "software".
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	res := Result{Scores: make(map[types.JobType]int, len(c.domains))}
	best, bestScore := types.JobTypeUnknown, -1
	for _, d := range c.domains {
		n := 0
		for _, k := range d.Keywords {
			if hit(lower, k) {
				n++
			}
		}
		res.Scores[d.Type] = n
		if n > bestScore {
			best, bestScore = d.Type, n
		}
	}

	for _, m := range c.markers {
		if strings.Contains(lower, m) {
			res.HasITMarkers = true
			break
		}
	}

	if bestScore <= 0 {
		if !res.HasITMarkers {
			res.Domain = types.JobTypeUnknown
			res.Rejected = true
			return res
		}
		best = types.JobTypeSoftware
	}

	res.Domain = best
	return res
}

func hit(lower, keyword string) bool {
	if substringKeywords[keyword] {
		return strings.Contains(lower, keyword)
	}
	return textmatch.Contains(lower, keyword)
}
