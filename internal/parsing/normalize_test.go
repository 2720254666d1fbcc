package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/matchly/internal/taxonomy"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"alias js", "JS", "javascript"},
		{"alias with spaces", "  NodeJS ", "node.js"},
		{"alias golang", "Golang", "go"},
		{"alias k8s", "k8s", "kubernetes"},
		{"alias dotnet", ".NET", "asp.net"},
		{"lossy react native", "React Native", "react"},
		{"alias to itself", "CI/CD", "ci/cd"},
		{"taxonomy term", "FastAPI", "fastapi"},
		{"multi-word taxonomy term", "Spring Boot", "spring boot"},
		{"unknown passes through", "  Distributed Systems ", "distributed systems"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)

	inputs := []string{
		"JS", "ts", "node", "Express", "ReactJS", "vue", "Postgres", "mongo", "AWS Cloud",
		"Amazon Web Services", "Google Cloud", "google cloud platform", "Microsoft Azure",
		"dotnet", "C Sharp", "cpp", "html5", "css3", "nextjs", "K8S", "golang", "Bash Scripting",
		"restful", "cicd", "ML", "AI", "QA", "py", "react native", "s3 bucket", "COBOL", "",
	}
	inputs = append(inputs, taxonomy.Default().Skills()...)

	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "normalize(%q) not idempotent", in)
	}
}

func TestCategory(t *testing.T) {
	n := NewNormalizer(nil)

	assert.Equal(t, "languages", n.Category("JS"))
	assert.Equal(t, "devops", n.Category("k8s"))
	assert.Equal(t, "backend", n.Category("Django"))
	assert.Equal(t, OtherCategory, n.Category("cobol"))
}

func TestNormalizeAll(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, []string{"javascript", "javascript", "go"}, n.NormalizeAll([]string{"js", "JavaScript", "golang"}))
}

func TestUnique(t *testing.T) {
	n := NewNormalizer(nil)
	assert.Equal(t, []string{"javascript", "go"}, n.Unique([]string{"js", "", "JavaScript", "golang", "Go"}))
}

func TestNewNormalizer_CustomTaxonomy(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Category{{Name: "editors", Skills: []string{"vim"}}}, map[string]string{"vi": "vim"})
	require.NoError(t, err)

	n := NewNormalizer(tax)
	assert.Equal(t, "vim", n.Normalize("VI"))
	assert.Equal(t, "editors", n.Category("vi"))
	assert.Equal(t, "js", n.Normalize("js"))
}
