// Package skills derives skill-gap analysis and matched/missing skill lists
// from a detailed match report.
package skills

import (
	"fmt"

	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/types"
)

const (
	// partialSuffix marks partially matched skills in the matched list
	partialSuffix = " (Partial)"

	missingReason = "No technical evidence found in experience or projects."
	missingHowTo  = "Complete a project or certification involving %s to demonstrate capability."
	partialReason = "Found limited evidence or related technology (%s)."
	partialHowTo  = "Deepen expertise in %s by implementing more complex features."

	// noEvidence fills the partial reason when a report item carries no evidence text
	noEvidence = "none"
)

// GapSummary holds the lists derived from one detailed match report
type GapSummary struct {
	Gaps    []types.SkillGap
	Matched []string
	Missing []string
}

// AnalyzeGaps walks the report in order, skipping the responsibilities item.
// Missing items become high-severity gaps and partial items medium-severity gaps.
// Requirements are deduplicated by normalized text and the first occurrence wins,
// so a skill reported under both skills and stacks yields a single gap.
func AnalyzeGaps(report []types.MatchReportItem, norm *parsing.Normalizer) GapSummary {
	if norm == nil {
		norm = parsing.NewNormalizer(nil)
	}

	summary := GapSummary{
		Gaps:    make([]types.SkillGap, 0),
		Matched: make([]string, 0),
		Missing: make([]string, 0),
	}
	gapSeen := make(map[string]bool)
	matchedSeen := make(map[string]bool)
	missingSeen := make(map[string]bool)

	for _, item := range report {
		if item.Category == types.CategoryResponsibility {
			continue
		}
		key := norm.Normalize(item.JobRequirement)
		req := item.JobRequirement

		switch item.MatchStatus {
		case types.StatusMissing:
			if !missingSeen[key] {
				summary.Missing = append(summary.Missing, req)
				missingSeen[key] = true
			}
			if !gapSeen[key] {
				summary.Gaps = append(summary.Gaps, types.SkillGap{
					Skill:        req,
					Severity:     types.SeverityHigh,
					Reason:       missingReason,
					HowToImprove: fmt.Sprintf(missingHowTo, req),
				})
				gapSeen[key] = true
			}

		case types.StatusStrong:
			if !matchedSeen[key] {
				summary.Matched = append(summary.Matched, req)
				matchedSeen[key] = true
			}

		case types.StatusPartial:
			if !matchedSeen[key] {
				summary.Matched = append(summary.Matched, req+partialSuffix)
				matchedSeen[key] = true
			}
			if !gapSeen[key] {
				evidence := noEvidence
				if item.ResumeEvidence != nil {
					evidence = *item.ResumeEvidence
				}
				summary.Gaps = append(summary.Gaps, types.SkillGap{
					Skill:        req,
					Severity:     types.SeverityMedium,
					Reason:       fmt.Sprintf(partialReason, evidence),
					HowToImprove: fmt.Sprintf(partialHowTo, req),
				})
				gapSeen[key] = true
			}
		}
	}

	return summary
}
