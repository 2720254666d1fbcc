// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/matchly/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", padRight(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", padRight(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// padRight truncates or pads s to exactly width runes
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// writeList appends up to maxItemsToShow items under a heading
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintJobDescription outputs a human-readable summary of the parsed job description.
func (p *Printer) PrintJobDescription(jd *types.ParsedJobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:      %s\n", jd.JobTitle)
	fmt.Fprintf(&sb, "Domain:     %s\n", jd.JobType)
	if jd.MinimumExperienceYears > 0 {
		fmt.Fprintf(&sb, "Experience: %d+ years\n", jd.MinimumExperienceYears)
	}
	if jd.Rejected() {
		p.printBox("📄 PARSED JOB DESCRIPTION", sb.String())
		return
	}
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", jd.RequiredSkills)
	writeList(&sb, "Stack", jd.StackTerms())
	writeList(&sb, "Responsibilities", jd.Responsibilities)

	p.printBox("📄 PARSED JOB DESCRIPTION", sb.String())
}

// PrintResume outputs the skill evidence detected in a resume.
func (p *Printer) PrintResume(resume *types.ParsedResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills found: %d\n", len(resume.TechnicalSkillsWithEvidence))
	fmt.Fprintf(&sb, "Experience:   %.1f years\n", resume.TotalExperienceYears)
	sb.WriteString("\n")

	count := min(len(resume.TechnicalSkillsWithEvidence), maxItemsToShow)
	for _, ev := range resume.TechnicalSkillsWithEvidence[:count] {
		fmt.Fprintf(&sb, "  • %s [%s]\n", ev.Skill, ev.Context)
	}
	if len(resume.TechnicalSkillsWithEvidence) > maxItemsToShow {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(resume.TechnicalSkillsWithEvidence)-maxItemsToShow)
	}

	p.printBox("🧾 RESUME EVIDENCE", sb.String())
}

// PrintMatchScore outputs the overall score, its components and the strongest report items.
func (p *Printer) PrintMatchScore(score *types.MatchScore) {
	if score == nil {
		return
	}

	b := score.Breakdown
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:          %d/100\n", score.OverallScore)
	fmt.Fprintf(&sb, "Skill match:      %s\n", score.SkillMatchPercent)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Skills:           %5.1f\n", b.SkillScore)
	fmt.Fprintf(&sb, "Responsibilities: %5.1f\n", b.ResponsibilityScore)
	fmt.Fprintf(&sb, "Experience:       %5.1f\n", b.ExperienceScore)
	fmt.Fprintf(&sb, "Stack:            %5.1f\n", b.StackScore)
	fmt.Fprintf(&sb, "ATS keywords:     %5.1f\n", b.ATSScore)
	sb.WriteString("\n")

	writeList(&sb, "Matched", score.MatchedSkills)
	writeList(&sb, "Missing", score.MissingCriticalSkills)

	if len(score.DetailedMatchReport) > 0 {
		sb.WriteString("Report:\n")
		count := min(len(score.DetailedMatchReport), maxItemsToShow)
		for _, item := range score.DetailedMatchReport[:count] {
			fmt.Fprintf(&sb, "  %s %s (%.2f)\n", statusIcon(item.MatchStatus), item.JobRequirement, item.Confidence)
		}
		if len(score.DetailedMatchReport) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(score.DetailedMatchReport)-maxItemsToShow)
		}
	}

	p.printBox("📊 MATCH SCORE", sb.String())
}

// PrintMatchResults outputs a requirement-by-requirement match table.
func (p *Printer) PrintMatchResults(results []types.MatchResult) {
	if len(results) == 0 {
		p.printBox("🔗 SKILL MATCHES", "No requirements to match")
		return
	}

	var sb strings.Builder
	for _, r := range results {
		best := "-"
		if r.BestMatch != nil {
			best = *r.BestMatch
		}
		fmt.Fprintf(&sb, "%s %s → %s (%.2f)\n", statusIcon(r.Status), r.Requirement, best, r.Confidence)
	}
	p.printBox("🔗 SKILL MATCHES", sb.String())
}

// PrintInsights outputs the generated summary, strengths and action plan.
func (p *Printer) PrintInsights(insights types.Insights) {
	if insights.Summary == "" && len(insights.Strengths) == 0 && len(insights.ActionPlan) == 0 {
		return
	}

	var sb strings.Builder
	if insights.Summary != "" {
		sb.WriteString(insights.Summary + "\n\n")
	}
	writeList(&sb, "Strengths", insights.Strengths)
	writeList(&sb, "Weaknesses", insights.Weaknesses)
	writeList(&sb, "Action Plan", insights.ActionPlan)

	p.printBox("💡 INSIGHTS", sb.String())
}

func statusIcon(status types.MatchStatus) string {
	switch status {
	case types.StatusStrong:
		return "✅"
	case types.StatusPartial:
		return "🟡"
	default:
		return "❌"
	}
}
