package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/matchly/internal/types"
)

const backendJD = `We are hiring a Backend Developer with 3+ years of experience.
Must know Python, Django, PostgreSQL and Docker. Deploy services on AWS.
You will build a payments api and develop inventory management system.`

func TestJobExtractor_Extract(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract(backendJD)

	require.False(t, jd.Rejected())
	assert.Equal(t, types.AcceptedJobTitle, jd.JobTitle)
	assert.Equal(t, types.JobTypeSoftware, jd.JobType)
	assert.Equal(t, []string{"python", "django", "postgresql", "aws", "docker"}, jd.ATSKeywords)
	assert.Equal(t, []string{
		"python", "django", "postgresql", "aws", "docker",
		"API Development", "Cloud Architecture", "Inventory Management Systems Engineering",
	}, jd.RequiredSkills)
	assert.Equal(t, []string{"django", "docker"}, jd.FrameworksAndTools)
	assert.Equal(t, []string{"postgresql"}, jd.Databases)
	assert.Equal(t, []string{"aws"}, jd.CloudPlatforms)
	assert.Equal(t, 3, jd.MinimumExperienceYears)
	assert.Equal(t, []string{types.DefaultResponsibility}, jd.Responsibilities)
}

func TestJobExtractor_Rejected(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract("Seeking a professional dog walker with 5 years of experience.")

	assert.True(t, jd.Rejected())
	assert.Equal(t, types.RejectedJobTitle, jd.JobTitle)
	assert.Equal(t, types.JobTypeUnknown, jd.JobType)
	assert.Empty(t, jd.RequiredSkills)
	assert.NotNil(t, jd.RequiredSkills)
}

func TestJobExtractor_AliasesCollapse(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract("Software role: Amazon Web Services and AWS, plus Google Cloud.")

	assert.Equal(t, []string{"aws", "gcp"}, jd.CloudPlatforms)
}

func TestJobExtractor_SymbolTerms(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract("Software engineer: C++, C# and Node.js (Express.js).")

	assert.Contains(t, jd.RequiredSkills, "c++")
	assert.Contains(t, jd.RequiredSkills, "c#")
	assert.Contains(t, jd.RequiredSkills, "node.js")
	assert.Contains(t, jd.RequiredSkills, "express.js")
	assert.NotContains(t, jd.RequiredSkills, "c")
}

func TestJobExtractor_DefaultYears(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract("Python developer")
	assert.Equal(t, DefaultRequiredYears, jd.MinimumExperienceYears)
}

func TestJobExtractor_DynamicCapabilityObjectLimit(t *testing.T) {
	jd := NewJobExtractor(nil, nil).Extract("Software: develop a very large distributed system")

	for _, s := range jd.RequiredSkills {
		assert.NotContains(t, s, "Systems Engineering")
	}
}

func TestExtractResponsibilities(t *testing.T) {
	text := `Backend Engineer

Responsibilities:
- Design and build REST APIs
* Own the deployment pipeline
1. Mentor junior engineers

Requirements:
- Python`

	assert.Equal(t, []string{
		"Design and build REST APIs",
		"Own the deployment pipeline",
		"Mentor junior engineers",
	}, extractResponsibilities(text))

	jd := NewJobExtractor(nil, nil).Extract(text)
	assert.Len(t, jd.Responsibilities, 3)
}

func TestExtractResponsibilities_None(t *testing.T) {
	assert.Empty(t, extractResponsibilities("Python developer\n- build things"))
}
