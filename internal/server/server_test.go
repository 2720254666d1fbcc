package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/embedding"
	"github.com/jonathan/matchly/internal/matching"
	"github.com/jonathan/matchly/internal/pipeline"
	"github.com/jonathan/matchly/internal/ranking"
	"github.com/jonathan/matchly/internal/server/ratelimit"
	"github.com/jonathan/matchly/internal/types"
)

const testJD = `Senior Backend Engineer

We are looking for an engineer with 3+ years of experience.

Requirements:
- Python and Django
- PostgreSQL and Redis
- Docker, Kubernetes and AWS
`

const testResume = `Jane Doe

Experience
Backend Engineer, Acme (5 years)
- Built inventory api with Python and FastAPI
- Managed PostgreSQL database on AWS

Skills
Python, Go, Docker, PostgreSQL
`

type testServer struct {
	*Server
	store db.Store
}

func newTestServer(t *testing.T, withStore bool, rl *ratelimit.Config) *testServer {
	t.Helper()

	var store db.Store
	if withStore {
		s, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "matchly.db"))
		require.NoError(t, err)
		store = s
	}
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}

	matcher := matching.New(embedding.NewHash(0), nil, nil)
	scorer := ranking.NewScorer(matcher, nil, nil)
	var saver pipeline.Saver
	if store != nil {
		saver = store
	}
	analyzer := pipeline.NewAnalyzer(scorer, nil, saver, nil)

	srv, err := New(Config{RateLimit: rl, MaxUploadBytes: 64 << 10}, Deps{
		Analyzer: analyzer,
		Matcher:  matcher,
		Store:    store,
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var files []formFile
	if filename != "" {
		files = append(files, formFile{field: "resume", filename: filename, content: content})
	}
	return multipartFilesRequest(t, files, fields)
}

func multipartFilesRequest(t *testing.T, files []formFile, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, embedding.ProviderHash, body["embedding"])
	assert.Equal(t, true, body["embedding_available"])
	assert.Equal(t, false, body["history"])
}

func TestAnalyzeText_PersistsAndLists(t *testing.T) {
	ts := newTestServer(t, true, nil)

	rec := ts.do(postJSON("/analyze/text", types.AnalyzeTextRequest{
		ResumeText:         testResume,
		JobDescriptionText: testJD,
		Filename:           "jane.txt",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[types.AnalysisResult](t, rec)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "jane.txt", result.Filename)
	assert.Equal(t, "text", result.JDSource)
	assert.Equal(t, result.Detail.OverallScore, result.Analysis.OverallScore)
	assert.Contains(t, result.Analysis.MatchedSkills, "python")

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/analyses/"+result.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[types.AnalysisResult](t, rec)
	assert.Equal(t, result.Analysis.OverallScore, stored.Analysis.OverallScore)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/analyses?limit=5&job_type=software", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Analyses []types.AnalysisRecord `json:"analyses"`
		Count    int                    `json:"count"`
	}](t, rec)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, result.ID, list.Analyses[0].ID)
}

func TestAnalyzeText_Validation(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/analyze/text", map[string]string{"resume_text": "x"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "JobDescriptionText")

	req := httptest.NewRequest(http.MethodPost, "/analyze/text", strings.NewReader("{not json"))
	rec = ts.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")

	rec = ts.do(postJSON("/analyze/text", types.AnalyzeTextRequest{ResumeText: " \n ", JobDescriptionText: testJD}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeText_RejectsNonITRole(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/analyze/text", types.AnalyzeTextRequest{
		ResumeText:         testResume,
		JobDescriptionText: "Seeking a friendly dog walker for weekday mornings.",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Contains(t, body["error"], "unsupported role")
	assert.Contains(t, body, "scores")
}

func TestAnalyzeUpload(t *testing.T) {
	ts := newTestServer(t, true, nil)

	rec := ts.do(multipartRequest(t, "jane.txt", []byte(testResume), map[string]string{"job_description": testJD}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[types.AnalysisResult](t, rec)
	assert.Equal(t, "jane.txt", result.Filename)
	assert.Contains(t, result.Sections, "skills")
}

func TestAnalyzeUpload_Errors(t *testing.T) {
	ts := newTestServer(t, false, nil)

	tests := []struct {
		name     string
		filename string
		content  []byte
		fields   map[string]string
		status   int
		contains string
	}{
		{"missing file", "", nil, map[string]string{"job_description": testJD}, http.StatusBadRequest, "resume"},
		{"unsupported format", "cv.exe", []byte("MZ"), map[string]string{"job_description": testJD}, http.StatusBadRequest, "unsupported file format"},
		{"fake pdf", "cv.pdf", []byte("hello"), map[string]string{"job_description": testJD}, http.StatusBadRequest, "invalid PDF file signature"},
		{"missing jd", "cv.txt", []byte(testResume), nil, http.StatusBadRequest, "job_description"},
		{"non-IT jd", "cv.txt", []byte(testResume), map[string]string{"job_description": "Dog walker wanted."}, http.StatusUnprocessableEntity, "unsupported role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(multipartRequest(t, tt.filename, tt.content, tt.fields))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestAnalyzeUpload_JobDescriptionFile(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(multipartFilesRequest(t, []formFile{
		{field: "resume", filename: "jane.txt", content: []byte(testResume)},
		{field: "job_description_file", filename: "backend.md", content: []byte(testJD)},
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[types.AnalysisResult](t, rec)
	assert.Equal(t, "jane.txt", result.Filename)
	assert.Equal(t, "backend.md", result.JDSource)
	assert.Contains(t, result.JobDescription.RequiredSkills, "python")
}

func TestAnalyzeUpload_JobDescriptionFileErrors(t *testing.T) {
	ts := newTestServer(t, false, nil)

	tests := []struct {
		name     string
		jdFile   formFile
		contains string
	}{
		{"unsupported format", formFile{field: "job_description_file", filename: "jd.exe", content: []byte("MZ")}, "unsupported file format"},
		{"empty file", formFile{field: "job_description_file", filename: "jd.txt", content: nil}, "file is empty"},
		{"fake pdf", formFile{field: "job_description_file", filename: "jd.pdf", content: []byte("hello")}, "invalid PDF file signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(multipartFilesRequest(t, []formFile{
				{field: "resume", filename: "jane.txt", content: []byte(testResume)},
				tt.jdFile,
			}, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestAnalyzeUpload_TooLarge(t *testing.T) {
	ts := newTestServer(t, false, nil)
	big := bytes.Repeat([]byte("python "), 200<<10)

	rec := ts.do(multipartRequest(t, "cv.txt", big, map[string]string{"job_description": testJD}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAnalyzeUpload_FromURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><h1>Backend Engineer</h1><p>Python, Django and PostgreSQL. 3+ years of experience.</p></main></body></html>`))
	}))
	defer posting.Close()

	ts := newTestServer(t, false, nil)
	rec := ts.do(multipartRequest(t, "cv.md", []byte(testResume), map[string]string{"jd_url": posting.URL}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[types.AnalysisResult](t, rec)
	assert.Equal(t, posting.URL, result.JDSource)
	assert.Contains(t, result.JobDescription.RequiredSkills, "python")
}

func TestMatch(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/match", types.MatchRequest{
		Requirements: []string{"Golang", "Kubernetes"},
		Candidates:   []string{"go", "docker"},
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[struct {
		Threshold float64             `json:"threshold"`
		Results   []types.MatchResult `json:"results"`
	}](t, rec)
	assert.Equal(t, matching.DefaultThreshold, body.Threshold)
	require.Len(t, body.Results, 2)
	assert.Equal(t, types.StatusStrong, body.Results[0].Status)
	assert.Equal(t, 1.0, body.Results[0].Confidence)
}

func TestMatch_Validation(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/match", types.MatchRequest{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(postJSON("/match", types.MatchRequest{Requirements: []string{"go"}, Threshold: 1.5}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Threshold")
}

func TestNormalize(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/normalize", types.NormalizeRequest{Skills: []string{"K8s", "Golang", "Underwater Basketry"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Skills []types.NormalizedSkill `json:"skills"`
	}](t, rec)
	require.Len(t, body.Skills, 3)
	assert.Equal(t, "kubernetes", body.Skills[0].Canonical)
	assert.Equal(t, "devops", body.Skills[0].Category)
	assert.Equal(t, "go", body.Skills[1].Canonical)
	assert.Equal(t, "languages", body.Skills[1].Category)
	assert.Equal(t, "other", body.Skills[2].Category)
}

func TestClassify(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(postJSON("/classify", types.ClassifyRequest{Text: "Data engineer building Spark and Airflow pipelines"}))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[types.ClassifyResponse](t, rec)
	assert.False(t, body.Rejected)
	assert.Equal(t, types.JobTypeData, body.Domain)

	rec = ts.do(postJSON("/classify", types.ClassifyRequest{Text: "Dog walker"}))
	body = decode[types.ClassifyResponse](t, rec)
	assert.True(t, body.Rejected)
}

func TestAnalyses_NotFoundAndUnconfigured(t *testing.T) {
	ts := newTestServer(t, true, nil)
	rec := ts.do(httptest.NewRequest(http.MethodGet, "/analyses/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/analyses?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bare := newTestServer(t, false, nil)
	rec = bare.do(httptest.NewRequest(http.MethodGet, "/analyses", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(httptest.NewRequest(http.MethodOptions, "/match", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, false, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})

	for i := 0; i < 2; i++ {
		rec := ts.do(postJSON("/normalize", types.NormalizeRequest{Skills: []string{"go"}}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := ts.do(postJSON("/normalize", types.NormalizeRequest{Skills: []string{"go"}}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	// health is never limited
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Config{}, Deps{})
	assert.Error(t, err)
}
