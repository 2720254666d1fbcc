// Package types provides type definitions for structured data shared across the matching engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobType is the technical domain a job description was classified into
type JobType string

// Job domains in classifier priority order
const (
	JobTypeSoftware JobType = "software"
	JobTypeData     JobType = "data"
	JobTypeAI       JobType = "ai"
	JobTypeDevOps   JobType = "devops"
	JobTypeCloud    JobType = "cloud"
	JobTypeQA       JobType = "qa"
	JobTypeSecurity JobType = "security"
	JobTypeUnknown  JobType = "unknown"
)

// RejectedJobTitle is the job title sentinel carried by a job description with no IT signal
const RejectedJobTitle = "NON-IT ROLE REJECTED"

// AcceptedJobTitle is the job title assigned to a job description that passed classification
const AcceptedJobTitle = "Assessed IT Role"

// DefaultResponsibility is used when no responsibility statements could be extracted
const DefaultResponsibility = "Technical contribution in identified tech stack"

// ParsedJobDescription represents the structured requirements extracted from a job description
type ParsedJobDescription struct {
	JobTitle               string   `json:"job_title"`
	JobType                JobType  `json:"job_type"`
	RequiredSkills         []string `json:"required_skills"`
	FrameworksAndTools     []string `json:"frameworks_and_tools"`
	Databases              []string `json:"databases"`
	CloudPlatforms         []string `json:"cloud_platforms"`
	MinimumExperienceYears int      `json:"minimum_experience_years"`
	ATSKeywords            []string `json:"ats_keywords"`
	Responsibilities       []string `json:"responsibilities"`
}

// Rejected reports whether the job description carries the non-IT rejection sentinel
func (jd *ParsedJobDescription) Rejected() bool {
	return jd.JobType == JobTypeUnknown && jd.JobTitle == RejectedJobTitle
}

// StackTerms returns frameworks, databases and cloud platforms in that order.
// Duplicates are preserved; callers deduplicate after normalization.
func (jd *ParsedJobDescription) StackTerms() []string {
	terms := make([]string, 0, len(jd.FrameworksAndTools)+len(jd.Databases)+len(jd.CloudPlatforms))
	terms = append(terms, jd.FrameworksAndTools...)
	terms = append(terms, jd.Databases...)
	terms = append(terms, jd.CloudPlatforms...)
	return terms
}
