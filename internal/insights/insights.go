// Package insights turns a MatchScore into a templated narrative: a summary,
// strengths, weaknesses, an action plan and interview questions.
package insights

import (
	"strconv"
	"strings"

	"github.com/jonathan/matchly/internal/phrases"
	"github.com/jonathan/matchly/internal/types"
)

// Score bands
const (
	ExcellentBand = 85
	GoodBand      = 70
	AverageBand   = 50
)

const (
	experienceStrength     = 15.0
	experienceWeakness     = 10.0
	responsibilityStrength = 15.0
	stackStrengthCount     = 4
	masteryStrengthCount   = 3

	listedMissing    = 5
	actionMissing    = 3
	questionsMissing = 2
	actionGaps       = 3
	minQuestions     = 2
	maxQuestions     = 4

	partialSuffix = " (Partial)"
)

// Explain derives insights from score. It is a pure function of its input.
func Explain(score *types.MatchScore) types.Insights {
	out := types.Insights{
		Strengths:          make([]string, 0),
		Weaknesses:         make([]string, 0),
		ActionPlan:         make([]string, 0),
		InterviewQuestions: make([]string, 0),
	}
	if score == nil {
		return out
	}

	out.Summary = render(summaryKey(score.OverallScore), "Score", strconv.Itoa(score.OverallScore))

	b := score.Breakdown
	if b.ExperienceScore >= experienceStrength {
		out.Strengths = append(out.Strengths, render("strength-experience", "Years", formatYears(score.DetectedYearsExperience)))
	}
	if len(score.MatchedSkills) > stackStrengthCount {
		out.Strengths = append(out.Strengths, render("strength-stack", "Skills", strings.Join(head(score.MatchedSkills, 5), ", ")))
	}
	if n := strongCount(score.DetailedMatchReport); n > masteryStrengthCount {
		out.Strengths = append(out.Strengths, render("strength-mastery", "Count", strconv.Itoa(n)))
	}
	if b.ResponsibilityScore >= responsibilityStrength {
		out.Strengths = append(out.Strengths, phrases.MustGet(phrases.InsightsFile, "strength-responsibilities"))
	}

	if missing := score.MissingCriticalSkills; len(missing) > 0 {
		out.Weaknesses = append(out.Weaknesses, render("weakness-missing", "Skills", strings.Join(head(missing, listedMissing), ", ")))
		out.ActionPlan = append(out.ActionPlan, render("action-keywords", "Skills", strings.Join(head(missing, actionMissing), ", ")))
		for _, skill := range head(missing, questionsMissing) {
			out.InterviewQuestions = append(out.InterviewQuestions, render("question-missing", "Skill", skill))
		}
	}

	if b.ExperienceScore < experienceWeakness && float64(score.RequiredYearsExperience) > score.DetectedYearsExperience {
		out.Weaknesses = append(out.Weaknesses, phrases.Render(phrases.InsightsFile, "weakness-experience", map[string]string{
			"Required": strconv.Itoa(score.RequiredYearsExperience),
			"Detected": formatYears(score.DetectedYearsExperience),
		}))
		out.ActionPlan = append(out.ActionPlan, phrases.MustGet(phrases.InsightsFile, "action-experience"))
	}

	for _, gap := range head(score.SkillGapAnalysis, actionGaps) {
		out.ActionPlan = append(out.ActionPlan, gap.HowToImprove)
	}

	if len(score.MatchedSkills) > 0 {
		skill := strings.TrimSuffix(score.MatchedSkills[0], partialSuffix)
		out.InterviewQuestions = append(out.InterviewQuestions, render("question-matched", "Skill", skill))
	}
	if len(out.InterviewQuestions) < minQuestions {
		out.InterviewQuestions = append(out.InterviewQuestions, phrases.MustGet(phrases.InsightsFile, "question-fallback"))
	}
	out.InterviewQuestions = head(out.InterviewQuestions, maxQuestions)

	return out
}

// Band names the score band of an overall score
func Band(overall int) string {
	switch {
	case overall >= ExcellentBand:
		return "excellent"
	case overall >= GoodBand:
		return "good"
	case overall >= AverageBand:
		return "average"
	default:
		return "low"
	}
}

func summaryKey(overall int) string {
	return "summary-" + Band(overall)
}

func render(key, field, value string) string {
	return phrases.Render(phrases.InsightsFile, key, map[string]string{field: value})
}

func strongCount(report []types.MatchReportItem) int {
	n := 0
	for _, item := range report {
		if item.Category != types.CategoryResponsibility && item.MatchStatus == types.StatusStrong {
			n++
		}
	}
	return n
}

func formatYears(y float64) string {
	return strconv.FormatFloat(y, 'f', -1, 64)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
