package types

import "time"

// AnalysisSummary is the compact score view returned alongside the full detail
type AnalysisSummary struct {
	OverallScore     int            `json:"overall_score"`
	Breakdown        ScoreBreakdown `json:"breakdown"`
	MatchedSkills    []string       `json:"matched_skills"`
	MissingSkills    []string       `json:"missing_skills"`
	SkillGapAnalysis []SkillGap     `json:"skill_gap_analysis"`
}

// AnalysisResult is the complete output of one resume analysis
type AnalysisResult struct {
	ID             string                `json:"id"`
	Filename       string                `json:"filename"`
	JDSource       string                `json:"jd_source"`
	Analysis       AnalysisSummary       `json:"analysis"`
	Insights       Insights              `json:"ai_insights"`
	Sections       map[string]string     `json:"sections"`
	Detail         *MatchScore           `json:"detail"`
	JobDescription *ParsedJobDescription `json:"job_description"`
	CreatedAt      time.Time             `json:"created_at"`
}

// NewAnalysisSummary builds the compact view from a MatchScore
func NewAnalysisSummary(score *MatchScore) AnalysisSummary {
	return AnalysisSummary{
		OverallScore:     score.OverallScore,
		Breakdown:        score.Breakdown,
		MatchedSkills:    score.MatchedSkills,
		MissingSkills:    score.MissingCriticalSkills,
		SkillGapAnalysis: score.SkillGapAnalysis,
	}
}

// AnalysisRecord is a stored analysis as listed by the history endpoints
type AnalysisRecord struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	JDSource     string    `json:"jd_source"`
	JobType      JobType   `json:"job_type"`
	OverallScore int       `json:"overall_score"`
	CreatedAt    time.Time `json:"created_at"`
}
