package parsing

import (
	"strings"

	"github.com/jonathan/matchly/internal/textmatch"
	"github.com/jonathan/matchly/internal/types"
)

const (
	// ExperienceRole labels the single experience item synthesized per resume
	ExperienceRole = "Software/IT Experience"
	// CapabilityCategory is the evidence category of synthesized capability labels
	CapabilityCategory = "concept"

	maxResponsibilityLabels = 5
)

// ResumeExtractor turns resume text into skill evidence
type ResumeExtractor struct {
	norm *Normalizer
}

// NewResumeExtractor creates a resume extractor
func NewResumeExtractor(norm *Normalizer) *ResumeExtractor {
	if norm == nil {
		norm = NewNormalizer(nil)
	}
	return &ResumeExtractor{norm: norm}
}

// Extract collects capability and taxonomy evidence from a resume.
//
// Capability phrases ("built an inventory api") become evidence with context
// "experience", or "project" when they appear under a projects heading. Taxonomy
// terms produce one evidence entry per distinct section context in which they
// occur; terms outside experience, projects and certifications count as
// "skills_list". Experience years are the largest plausible "N years" figure.
func (e *ResumeExtractor) Extract(text string) *types.ParsedResume {
	lower := strings.ToLower(text)
	// snippets come from the original text unless lowercasing shifted byte offsets
	src := text
	if len(src) != len(lower) {
		src = lower
	}
	spans := sectionSpans(lower)

	var evidence []types.SkillEvidence
	var responsibilities []string

	// 1. Capability evidence
	for _, m := range findCapabilities(lower, resumeCapabilities) {
		ctx := types.ContextExperience
		if sectionAt(spans, m.Start) == SectionProjects {
			ctx = types.ContextProject
		}
		evidence = append(evidence, types.SkillEvidence{
			Skill:        m.Label,
			Category:     CapabilityCategory,
			Context:      ctx,
			EvidenceText: snippet(src, m.Start, 10, 70),
		})
		if len(responsibilities) < maxResponsibilityLabels {
			responsibilities = append(responsibilities, m.Label)
		}
	}

	// 2. Taxonomy evidence, one entry per (skill, context)
	seenSkill := make(map[string]struct{})
	var stack []string
	type key struct {
		skill string
		ctx   types.EvidenceContext
	}
	seenEvidence := make(map[key]struct{})
	for _, h := range e.norm.scanTaxonomy(lower) {
		if _, ok := seenSkill[h.Skill]; ok {
			continue
		}
		seenSkill[h.Skill] = struct{}{}
		stack = append(stack, h.Skill)

		for _, idx := range occurrences(lower, h) {
			ctx := contextForSection(sectionAt(spans, idx))
			k := key{h.Skill, ctx}
			if _, ok := seenEvidence[k]; ok {
				continue
			}
			seenEvidence[k] = struct{}{}
			evidence = append(evidence, types.SkillEvidence{
				Skill:        h.Skill,
				Category:     h.Category,
				Context:      ctx,
				EvidenceText: snippet(src, idx, 20, 60),
			})
		}
	}

	if evidence == nil {
		evidence = []types.SkillEvidence{}
	}
	if responsibilities == nil {
		responsibilities = []string{}
	}
	if stack == nil {
		stack = []string{}
	}

	return &types.ParsedResume{
		TechnicalSkillsWithEvidence: evidence,
		Experience: []types.ExperienceItem{{
			Role:                      ExperienceRole,
			TechnicalResponsibilities: responsibilities,
			TechStack:                 stack,
		}},
		ToolsAndMethodsUsed:  append([]string{}, stack...),
		TotalExperienceYears: CandidateYears(lower),
		RawText:              text,
	}
}

func occurrences(lower string, h taxonomyHit) []int {
	idxs := textmatch.IndexAll(lower, h.Term)
	if len(idxs) == 0 {
		return []int{h.Index}
	}
	return idxs
}

func contextForSection(section string) types.EvidenceContext {
	switch section {
	case SectionExperience:
		return types.ContextExperience
	case SectionProjects:
		return types.ContextProject
	case SectionCertifications:
		return types.ContextCertification
	default:
		return types.ContextSkillsList
	}
}
