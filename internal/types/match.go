package types

// MatchStatus is the three-tier classification of a requirement against its best evidence
type MatchStatus string

// Match statuses
const (
	StatusStrong  MatchStatus = "strong"
	StatusPartial MatchStatus = "partial"
	StatusMissing MatchStatus = "missing"
)

// MatchResult is the best pairing found for one requirement
type MatchResult struct {
	Requirement string      `json:"jd_requirement"`
	BestMatch   *string     `json:"best_match"`
	Confidence  float64     `json:"confidence"`
	Status      MatchStatus `json:"status"`
}

// ReportCategory identifies which scoring category produced a report item
type ReportCategory string

// Report categories
const (
	CategorySkill          ReportCategory = "skill"
	CategoryStack          ReportCategory = "stack"
	CategoryResponsibility ReportCategory = "responsibility"
)

// ResponsibilityRequirement labels the synthetic report item for the responsibilities category
const ResponsibilityRequirement = "Technical Responsibilities"

// MatchReportItem records how one requirement was evaluated
type MatchReportItem struct {
	JobRequirement string         `json:"job_requirement"`
	MatchStatus    MatchStatus    `json:"match_status"`
	ResumeEvidence *string        `json:"resume_evidence"`
	Confidence     float64        `json:"confidence"`
	Category       ReportCategory `json:"category"`
	ScoreImpact    float64        `json:"score_impact"`
}

// Severity ranks a skill gap
type Severity string

// Gap severities
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// SkillGap describes a requirement with insufficient evidence
type SkillGap struct {
	Skill        string   `json:"skill"`
	Severity     Severity `json:"severity"`
	Reason       string   `json:"reason"`
	HowToImprove string   `json:"how_to_improve"`
}

// ScoreBreakdown holds per-category points. EducationScore and Bonus are
// fixed display values and are not part of the overall score.
type ScoreBreakdown struct {
	SkillScore          float64 `json:"skill_score"`
	ResponsibilityScore float64 `json:"responsibility_score"`
	ExperienceScore     float64 `json:"experience_score"`
	StackScore          float64 `json:"stack_score"`
	ATSScore            float64 `json:"ats_score"`
	EducationScore      float64 `json:"education_score"`
	Bonus               float64 `json:"bonus"`
}

// Total sums the five computed categories
func (b ScoreBreakdown) Total() float64 {
	return b.SkillScore + b.ResponsibilityScore + b.ExperienceScore + b.StackScore + b.ATSScore
}

// MatchScore is the full result of scoring a resume against a job description
type MatchScore struct {
	OverallScore            int               `json:"overall_score"`
	Breakdown               ScoreBreakdown    `json:"breakdown"`
	MissingCriticalSkills   []string          `json:"missing_critical_skills"`
	MatchedSkills           []string          `json:"matched_skills"`
	DetailedMatchReport     []MatchReportItem `json:"detailed_match_report"`
	SkillGapAnalysis        []SkillGap        `json:"skill_gap_analysis"`
	SkillMatchPercent       string            `json:"skill_match_percent"`
	DetectedYearsExperience float64           `json:"detected_years_experience"`
	RequiredYearsExperience int               `json:"required_years_experience"`
}

// Insights is the templated narrative derived from a MatchScore
type Insights struct {
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	ActionPlan         []string `json:"action_plan"`
	InterviewQuestions []string `json:"interview_questions"`
}
