package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/matchly/internal/embedding"
	"github.com/jonathan/matchly/internal/matching"
	"github.com/jonathan/matchly/internal/ranking"
	"github.com/jonathan/matchly/internal/types"
)

const sampleJD = `Senior Backend Engineer

We are looking for an engineer with 3+ years of experience.

Requirements:
- Python and Django
- PostgreSQL and Redis
- Docker, Kubernetes and AWS
- Build scalable REST APIs
`

const sampleResume = `Jane Doe
jane@example.com

Experience
Backend Engineer, Acme (5 years)
- Built inventory api with Python and FastAPI
- Managed PostgreSQL database on AWS
- Deployed services with Docker

Skills
Python, Go, Docker, PostgreSQL

Education
BSc Computer Science
`

type recordingStore struct {
	mu    sync.Mutex
	saved []*types.AnalysisResult
	err   error
}

func (s *recordingStore) SaveAnalysis(_ context.Context, r *types.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, r)
	return nil
}

func newAnalyzer(store Saver) *Analyzer {
	scorer := ranking.NewScorer(matching.New(embedding.NewHash(0), nil, nil), nil, nil)
	a := NewAnalyzer(scorer, nil, store, nil)
	a.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	a.newID = func() string { return "11111111-2222-3333-4444-555555555555" }
	return a
}

func TestAnalyze_EndToEnd(t *testing.T) {
	store := &recordingStore{}
	var steps []string

	result, err := newAnalyzer(store).Analyze(context.Background(), Input{
		ResumeText:         sampleResume,
		JobDescriptionText: sampleJD,
		Filename:           "jane.pdf",
		JDSource:           "text",
		OnProgress:         func(e ProgressEvent) { steps = append(steps, e.Step) },
	})
	require.NoError(t, err)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", result.ID)
	assert.Equal(t, "jane.pdf", result.Filename)
	assert.Equal(t, "text", result.JDSource)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), result.CreatedAt)

	require.NotNil(t, result.Detail)
	require.NotNil(t, result.JobDescription)
	assert.Equal(t, types.AcceptedJobTitle, result.JobDescription.JobTitle)
	assert.Equal(t, 3, result.Detail.RequiredYearsExperience)
	assert.Equal(t, 5.0, result.Detail.DetectedYearsExperience)
	assert.Equal(t, result.Detail.OverallScore, result.Analysis.OverallScore)
	assert.Equal(t, result.Detail.MissingCriticalSkills, result.Analysis.MissingSkills)
	assert.NotEmpty(t, result.Insights.Summary)
	assert.Contains(t, result.Sections, "experience")
	assert.Contains(t, result.Sections, "skills")

	assert.Equal(t, []string{StepExtract, StepScore, StepExplain, StepPersist}, steps)
	require.Len(t, store.saved, 1)
	assert.Same(t, result, store.saved[0])
}

func TestAnalyze_RejectsNonITRole(t *testing.T) {
	store := &recordingStore{}
	_, err := newAnalyzer(store).Analyze(context.Background(), Input{
		ResumeText:         sampleResume,
		JobDescriptionText: "Seeking a professional dog walker with 5 years of experience.",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedRole))

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	for _, n := range rejection.Scores {
		assert.Zero(t, n)
	}
	assert.Empty(t, store.saved)
}

func TestAnalyze_PersistFailureIsNotFatal(t *testing.T) {
	store := &recordingStore{err: errors.New("db down")}
	result, err := newAnalyzer(store).Analyze(context.Background(), Input{
		ResumeText:         sampleResume,
		JobDescriptionText: sampleJD,
	})

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestAnalyze_WithoutStore(t *testing.T) {
	result, err := newAnalyzer(nil).Analyze(context.Background(), Input{
		ResumeText:         "",
		JobDescriptionText: sampleJD,
	})

	require.NoError(t, err)
	assert.Zero(t, result.Detail.DetectedYearsExperience)
	assert.NotEmpty(t, result.Detail.MissingCriticalSkills)
}

func TestParseJobDescription(t *testing.T) {
	a := newAnalyzer(nil)

	jd, err := a.ParseJobDescription(sampleJD)
	require.NoError(t, err)
	assert.Contains(t, jd.RequiredSkills, "python")

	_, err = a.ParseJobDescription("")
	assert.ErrorIs(t, err, ErrUnsupportedRole)
}

func TestRejectionError_Message(t *testing.T) {
	err := &RejectionError{}
	assert.Contains(t, err.Error(), "unsupported role")
}
