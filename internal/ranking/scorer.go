// Package ranking scores a parsed resume against a parsed job description
// with fixed category weights and produces an auditable match report.
package ranking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/matching"
	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/skills"
	"github.com/jonathan/matchly/internal/types"
)

// Category weights. They sum to 100.
const (
	SkillWeight          = 35.0
	ResponsibilityWeight = 25.0
	ExperienceWeight     = 20.0
	StackWeight          = 10.0
	ATSWeight            = 10.0
)

// Flat display values reported in the breakdown but not part of the overall score
const (
	EducationScore = 10.0
	BonusScore     = 5.0
)

const (
	// contextBoost rewards skills demonstrated in experience or projects over listed ones
	contextBoost = 1.1
	// neutralSimilarity is used for responsibilities when no embedder can compare them
	neutralSimilarity = 0.5
)

// Scorer computes MatchScores. It is safe for concurrent use.
type Scorer struct {
	matcher   *matching.Matcher
	norm      *parsing.Normalizer
	threshold float64
	logger    *zap.Logger
}

// NewScorer creates a scorer. The normalizer defaults to the matcher's and the
// logger to a no-op logger.
func NewScorer(matcher *matching.Matcher, norm *parsing.Normalizer, logger *zap.Logger) *Scorer {
	if norm == nil {
		norm = matcher.Normalizer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{matcher: matcher, norm: norm, threshold: matching.DefaultThreshold, logger: logger}
}

// WithThreshold returns a copy of the scorer using threshold as the partial cutoff
func (s *Scorer) WithThreshold(threshold float64) *Scorer {
	c := *s
	if threshold > 0 {
		c.threshold = threshold
	}
	return &c
}

// ScoreMatch evaluates resume against jd. It never fails for data-shape reasons:
// empty requirement lists earn full credit and an unavailable embedder degrades
// to exact matching. A rejected job description scores zero.
func (s *Scorer) ScoreMatch(ctx context.Context, resume *types.ParsedResume, jd *types.ParsedJobDescription) *types.MatchScore {
	if resume == nil {
		resume = &types.ParsedResume{}
	}
	if jd == nil {
		jd = &types.ParsedJobDescription{}
	}
	if jd.Rejected() {
		s.logger.Debug("job description rejected, scoring zero")
		return zeroScore(resume, jd)
	}

	evidence := s.norm.Unique(resume.SkillNames())
	report := make([]types.MatchReportItem, 0, len(jd.RequiredSkills)+len(jd.StackTerms())+1)

	skillScore, skillItems := s.scoreSkills(ctx, resume, jd.RequiredSkills, evidence)
	report = append(report, skillItems...)

	respScore, respItem := s.scoreResponsibilities(ctx, resume, jd)
	report = append(report, respItem)

	requiredYears := jd.MinimumExperienceYears
	if requiredYears <= 0 {
		requiredYears = parsing.DefaultRequiredYears
	}
	expScore := ExperienceWeight * math.Min(1.0, resume.TotalExperienceYears/float64(requiredYears))

	stackScore, stackItems := s.scoreStack(ctx, s.stackRequirements(jd), evidence)
	report = append(report, stackItems...)

	atsScore := s.scoreATS(jd.ATSKeywords, evidence)

	breakdown := types.ScoreBreakdown{
		SkillScore:          round1(skillScore),
		ResponsibilityScore: round1(respScore),
		ExperienceScore:     round1(expScore),
		StackScore:          round1(stackScore),
		ATSScore:            round1(atsScore),
		EducationScore:      EducationScore,
		Bonus:               BonusScore,
	}
	overall := int(math.Max(0, math.Min(100, math.Round(breakdown.Total()))))

	gaps := skills.AnalyzeGaps(report, s.norm)

	s.logger.Debug("match scored",
		zap.Int("overall", overall),
		zap.Float64("skills", breakdown.SkillScore),
		zap.Float64("responsibilities", breakdown.ResponsibilityScore),
		zap.Float64("experience", breakdown.ExperienceScore),
		zap.Float64("stack", breakdown.StackScore),
		zap.Float64("ats", breakdown.ATSScore),
		zap.Int("report_items", len(report)))

	return &types.MatchScore{
		OverallScore:            overall,
		Breakdown:               breakdown,
		MissingCriticalSkills:   gaps.Missing,
		MatchedSkills:           gaps.Matched,
		DetailedMatchReport:     report,
		SkillGapAnalysis:        gaps.Gaps,
		SkillMatchPercent:       fmt.Sprintf("%d%%", int(skillScore/SkillWeight*100)),
		DetectedYearsExperience: resume.TotalExperienceYears,
		RequiredYearsExperience: requiredYears,
	}
}

// zeroScore is the result for a job description with no IT relevance
func zeroScore(resume *types.ParsedResume, jd *types.ParsedJobDescription) *types.MatchScore {
	return &types.MatchScore{
		Breakdown: types.ScoreBreakdown{
			EducationScore: EducationScore,
			Bonus:          BonusScore,
		},
		MissingCriticalSkills:   []string{},
		MatchedSkills:           []string{},
		DetailedMatchReport:     []types.MatchReportItem{},
		SkillGapAnalysis:        []types.SkillGap{},
		SkillMatchPercent:       "0%",
		DetectedYearsExperience: resume.TotalExperienceYears,
		RequiredYearsExperience: jd.MinimumExperienceYears,
	}
}

// scoreSkills splits SkillWeight evenly across required skills
func (s *Scorer) scoreSkills(ctx context.Context, resume *types.ParsedResume, required, evidence []string) (float64, []types.MatchReportItem) {
	if len(required) == 0 {
		return SkillWeight, nil
	}

	share := SkillWeight / float64(len(required))
	demonstrated := s.demonstratedSkills(resume)
	results := s.matcher.Match(ctx, s.norm.NormalizeAll(required), evidence, s.threshold)

	total := 0.0
	items := make([]types.MatchReportItem, 0, len(results))
	for i, res := range results {
		pts := points(res, share)
		if res.BestMatch != nil && demonstrated[*res.BestMatch] {
			pts = math.Min(share, pts*contextBoost)
		}
		total += pts

		text := "No technical evidence"
		if res.BestMatch != nil {
			text = "Matched to " + *res.BestMatch
		}
		items = append(items, types.MatchReportItem{
			JobRequirement: required[i],
			MatchStatus:    res.Status,
			ResumeEvidence: &text,
			Confidence:     res.Confidence,
			Category:       types.CategorySkill,
			ScoreImpact:    round2(pts),
		})
	}
	return total, items
}

// scoreStack splits StackWeight evenly across the deduplicated stack terms
func (s *Scorer) scoreStack(ctx context.Context, stack, evidence []string) (float64, []types.MatchReportItem) {
	if len(stack) == 0 {
		return StackWeight, nil
	}

	share := StackWeight / float64(len(stack))
	results := s.matcher.Match(ctx, s.norm.NormalizeAll(stack), evidence, s.threshold)

	total := 0.0
	items := make([]types.MatchReportItem, 0, len(results))
	for i, res := range results {
		pts := points(res, share)
		total += pts
		items = append(items, types.MatchReportItem{
			JobRequirement: stack[i],
			MatchStatus:    res.Status,
			ResumeEvidence: res.BestMatch,
			Confidence:     res.Confidence,
			Category:       types.CategoryStack,
			ScoreImpact:    round2(pts),
		})
	}
	return total, items
}

// scoreResponsibilities compares all resume responsibilities with all JD responsibilities as two texts
func (s *Scorer) scoreResponsibilities(ctx context.Context, resume *types.ParsedResume, jd *types.ParsedJobDescription) (float64, types.MatchReportItem) {
	jdText := strings.TrimSpace(strings.Join(jd.Responsibilities, " "))
	resumeText := strings.TrimSpace(strings.Join(resume.Responsibilities(), " "))

	var overlap float64
	switch {
	case jdText == "":
		overlap = 1.0
	case resumeText == "":
		overlap = 0
	default:
		sim, ok := s.matcher.Similarity(ctx, resumeText, jdText)
		if !ok {
			sim = neutralSimilarity
		}
		overlap = sim
	}

	score := ResponsibilityWeight * overlap
	text := fmt.Sprintf("Semantic overlap: %d%%", int(overlap*100))
	return score, types.MatchReportItem{
		JobRequirement: types.ResponsibilityRequirement,
		MatchStatus:    matching.Classify(overlap, matching.DefaultThreshold),
		ResumeEvidence: &text,
		Confidence:     round2(overlap),
		Category:       types.CategoryResponsibility,
		ScoreImpact:    round2(score),
	}
}

// scoreATS is the fraction of ATS keywords present verbatim, after normalization,
// among the resume skills. Duplicate keywords count individually.
func (s *Scorer) scoreATS(keywords, evidence []string) float64 {
	if len(keywords) == 0 {
		return ATSWeight
	}
	have := make(map[string]bool, len(evidence))
	for _, e := range evidence {
		have[e] = true
	}
	found := 0
	for _, kw := range keywords {
		if have[s.norm.Normalize(kw)] {
			found++
		}
	}
	return ATSWeight * float64(found) / float64(len(keywords))
}

// stackRequirements unions frameworks, databases and cloud platforms,
// deduplicated by normalized form and keeping the first raw spelling
func (s *Scorer) stackRequirements(jd *types.ParsedJobDescription) []string {
	terms := jd.StackTerms()
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		key := s.norm.Normalize(t)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// demonstratedSkills returns the normalized skills with at least one
// experience or project evidence entry
func (s *Scorer) demonstratedSkills(resume *types.ParsedResume) map[string]bool {
	out := make(map[string]bool)
	for _, ev := range resume.TechnicalSkillsWithEvidence {
		if ev.Context.Demonstrated() {
			out[s.norm.Normalize(ev.Skill)] = true
		}
	}
	return out
}

// points awards the full share for strong matches and a confidence-weighted share for partial ones
func points(res types.MatchResult, share float64) float64 {
	switch res.Status {
	case types.StatusStrong:
		return share
	case types.StatusPartial:
		return share * res.Confidence
	default:
		return 0
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
