package phrases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPhrase(t *testing.T) {
	ClearCache()

	phrase, err := Get(InsightsFile, "summary-low")
	require.NoError(t, err)
	assert.Contains(t, phrase, "Low Match")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read phrase file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(InsightsFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet(InsightsFile, "nonexistent-key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("{{.Skill}} and {{.Skill}} in {{.Years}} years", map[string]string{
		"Skill": "Go",
		"Years": "3",
	})
	assert.Equal(t, "Go and Go in 3 years", result)
}

func TestFormat_UnknownPlaceholderKept(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", nil))
}

func TestRender(t *testing.T) {
	ClearCache()

	got := Render(InsightsFile, "summary-good", map[string]string{"Score": "72"})
	assert.Contains(t, got, "**Good Match (72/100)**")
}

func TestList_AllTemplatesPresent(t *testing.T) {
	ClearCache()

	keys, err := List(InsightsFile)
	require.NoError(t, err)
	for _, want := range []string{
		"summary-excellent", "summary-good", "summary-average", "summary-low",
		"strength-experience", "strength-stack", "strength-mastery", "strength-responsibilities",
		"weakness-missing", "weakness-experience",
		"action-keywords", "action-experience",
		"question-missing", "question-matched", "question-fallback",
	} {
		assert.Contains(t, keys, want)
	}
}
