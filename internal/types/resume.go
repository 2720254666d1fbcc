package types

// EvidenceContext qualifies where in a resume a skill was observed
type EvidenceContext string

// Evidence contexts
const (
	ContextExperience    EvidenceContext = "experience"
	ContextProject       EvidenceContext = "project"
	ContextSkillsList    EvidenceContext = "skills_list"
	ContextCertification EvidenceContext = "certification"
	ContextUnknown       EvidenceContext = "unknown"
)

// Demonstrated reports whether the context shows the skill in use rather than merely listed
func (c EvidenceContext) Demonstrated() bool {
	return c == ContextExperience || c == ContextProject
}

// SkillEvidence is one detected occurrence of a skill in a resume
type SkillEvidence struct {
	Skill        string          `json:"skill"`
	Category     string          `json:"category"`
	Context      EvidenceContext `json:"context"`
	EvidenceText string          `json:"evidence_text"`
}

// ExperienceItem summarizes one block of technical work experience
type ExperienceItem struct {
	Role                      string   `json:"role"`
	TechnicalResponsibilities []string `json:"technical_responsibilities"`
	TechStack                 []string `json:"tech_stack"`
}

// ParsedResume represents the skill evidence extracted from a resume
type ParsedResume struct {
	TechnicalSkillsWithEvidence []SkillEvidence  `json:"technical_skills_with_evidence"`
	Experience                  []ExperienceItem `json:"experience"`
	ToolsAndMethodsUsed         []string         `json:"tools_and_methods_used"`
	TotalExperienceYears        float64          `json:"total_experience_years"`
	RawText                     string           `json:"raw_text"`
}

// SkillNames returns the skill of every evidence entry in order, duplicates included
func (r *ParsedResume) SkillNames() []string {
	names := make([]string, 0, len(r.TechnicalSkillsWithEvidence))
	for _, ev := range r.TechnicalSkillsWithEvidence {
		names = append(names, ev.Skill)
	}
	return names
}

// Responsibilities returns all technical responsibilities across experience items
func (r *ParsedResume) Responsibilities() []string {
	var out []string
	for _, exp := range r.Experience {
		out = append(out, exp.TechnicalResponsibilities...)
	}
	return out
}
