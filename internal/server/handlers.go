package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/ingestion"
	"github.com/jonathan/matchly/internal/pipeline"
	"github.com/jonathan/matchly/internal/types"
)

// multipartOverhead leaves room for form fields next to the uploaded files
const multipartOverhead = 1 << 20

// handleAnalyze accepts a multipart upload: a "resume" file plus a job
// description as "job_description" text, a "job_description_file" upload or a
// "jd_url" to fetch
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// resume and job description files may each reach the upload limit
	limit := 2*s.maxUploadBytes + multipartOverhead
	if r.ContentLength > limit {
		s.handleError(w, r, &http.MaxBytesError{Limit: limit})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.handleError(w, r, err)
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "body", Message: "expected multipart/form-data"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	resumeText, filename, err := s.uploadedText(r, "resume")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	jdText, jdSource, err := s.jobDescriptionFromForm(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.runAnalysis(w, r, pipeline.Input{
		ResumeText:         resumeText,
		JobDescriptionText: jdText,
		Filename:           filename,
		JDSource:           jdSource,
	})
}

// uploadedText validates the named form file and extracts its text
func (s *Server) uploadedText(r *http.Request, field string) (text, filename string, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", &ErrValidation{Field: field, Message: "required"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return "", "", &ingestion.UploadError{Filename: header.Filename, Message: "failed to read upload", Cause: err}
	}
	if err := ingestion.ValidateUpload(header.Filename, data, s.maxUploadBytes); err != nil {
		return "", "", err
	}
	text, err = ingestion.ExtractText(data, header.Filename)
	if err != nil {
		return "", "", err
	}
	return text, header.Filename, nil
}

// hasFormFile reports whether the multipart form carries a file under field
func hasFormFile(r *http.Request, field string) bool {
	return r.MultipartForm != nil && len(r.MultipartForm.File[field]) > 0
}

// jobDescriptionFromForm returns the pasted text, else the uploaded
// job_description_file, else the fetched jd_url
func (s *Server) jobDescriptionFromForm(r *http.Request) (text, source string, err error) {
	text = strings.TrimSpace(r.FormValue("job_description"))
	jdURL := strings.TrimSpace(r.FormValue("jd_url"))

	switch {
	case text != "":
		source = "text"
	case hasFormFile(r, "job_description_file"):
		text, source, err = s.uploadedText(r, "job_description_file")
		if err != nil {
			return "", "", err
		}
	case jdURL != "":
		text, _, err = ingestion.IngestURL(r.Context(), jdURL, s.fetchOptions)
		if err != nil {
			return "", "", err
		}
		source = jdURL
	default:
		return "", "", &ErrValidation{Field: "job_description", Message: "required (or job_description_file or jd_url)"}
	}

	if err := s.checkJDLength(text); err != nil {
		return "", "", err
	}
	return text, source, nil
}

func (s *Server) checkJDLength(text string) error {
	if n := utf8.RuneCountInString(text); n > s.maxJDChars {
		return &ErrValidation{
			Field:   "job_description",
			Message: fmt.Sprintf("too long (%d characters, limit %d)", n, s.maxJDChars),
		}
	}
	return nil
}

// handleAnalyzeText analyzes pasted resume and job description text
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeTextRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if err := s.checkJDLength(req.JobDescriptionText); err != nil {
		s.handleError(w, r, err)
		return
	}

	resumeText := ingestion.CleanText(req.ResumeText)
	if resumeText == "" {
		s.handleError(w, r, &ErrValidation{Field: "resume_text", Message: "required"})
		return
	}

	s.runAnalysis(w, r, pipeline.Input{
		ResumeText:         resumeText,
		JobDescriptionText: req.JobDescriptionText,
		Filename:           req.Filename,
		JDSource:           "text",
	})
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, in pipeline.Input) {
	result, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatch runs the semantic matcher on two raw term lists
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = s.threshold
	}

	results := s.matcher.Match(r.Context(), req.Requirements, req.Candidates, threshold)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"threshold": threshold,
		"results":   results,
	})
}

// handleNormalize returns the canonical form and taxonomy category of each term
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req types.NormalizeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	norm := s.matcher.Normalizer()
	skills := make([]types.NormalizedSkill, 0, len(req.Skills))
	for _, raw := range req.Skills {
		skills = append(skills, types.NormalizedSkill{
			Raw:       raw,
			Canonical: norm.Normalize(raw),
			Category:  norm.Category(raw),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": skills})
}

// handleClassify reports the detected technical domain of a text
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result := s.classifier.Classify(req.Text)
	s.jsonResponse(w, http.StatusOK, types.ClassifyResponse{
		Domain:       result.Domain,
		Rejected:     result.Rejected,
		Scores:       result.Scores,
		HasITMarkers: result.HasITMarkers,
	})
}

// handleListAnalyses lists stored analyses. Query: job_type, min_score, limit, offset.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "analysis history is not configured")
		return
	}

	filter := db.ListFilter{JobType: types.JobType(r.URL.Query().Get("job_type"))}
	for name, dst := range map[string]*int{
		"min_score": &filter.MinScore,
		"limit":     &filter.Limit,
		"offset":    &filter.Offset,
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleError(w, r, &ErrValidation{Field: name, Message: "must be a non-negative integer"})
			return
		}
		*dst = n
	}

	records, err := s.store.ListAnalyses(r.Context(), filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": records,
		"count":    len(records),
	})
}

// handleGetAnalysis returns one stored analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "analysis history is not configured")
		return
	}

	result, err := s.store.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	emb := s.matcher.Embedder()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":              "ok",
		"embedding":           emb.Name(),
		"embedding_available": emb.Available(),
		"history":             s.store != nil,
	})
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether handling may continue.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.handleError(w, r, err)
			return false
		}
		s.handleError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.logger.Debug("request validation failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.handleError(w, r, validationError(err))
		return false
	}
	return true
}
