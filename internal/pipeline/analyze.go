// Package pipeline orchestrates one resume analysis: extraction, scoring,
// explanation and optional persistence.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/matchly/internal/classify"
	"github.com/jonathan/matchly/internal/insights"
	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/ranking"
	"github.com/jonathan/matchly/internal/types"
)

// Step names reported through ProgressCallback
const (
	StepExtract = "extract"
	StepScore   = "score"
	StepExplain = "explain"
	StepPersist = "persist"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Saver persists finished analyses
type Saver interface {
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error
}

// Input holds the documents for one analysis
type Input struct {
	ResumeText         string
	JobDescriptionText string
	// Filename names the uploaded resume; optional
	Filename string
	// JDSource describes where the job description came from ("text", a URL, a file name)
	JDSource   string
	OnProgress ProgressCallback
}

// Analyzer runs analyses. It is safe for concurrent use.
type Analyzer struct {
	classifier *classify.Classifier
	jobs       *parsing.JobExtractor
	resumes    *parsing.ResumeExtractor
	scorer     *ranking.Scorer
	store      Saver
	logger     *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewAnalyzer creates an analyzer. store may be nil to skip persistence.
func NewAnalyzer(scorer *ranking.Scorer, norm *parsing.Normalizer, store Saver, logger *zap.Logger) *Analyzer {
	if norm == nil {
		norm = parsing.NewNormalizer(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier := classify.New()
	return &Analyzer{
		classifier: classifier,
		jobs:       parsing.NewJobExtractor(norm, classifier),
		resumes:    parsing.NewResumeExtractor(norm),
		scorer:     scorer,
		store:      store,
		logger:     logger,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// ParseJobDescription extracts requirements, returning a *RejectionError for
// text with no IT signal
func (a *Analyzer) ParseJobDescription(text string) (*types.ParsedJobDescription, error) {
	jd := a.jobs.Extract(text)
	if jd.Rejected() {
		return nil, &RejectionError{Scores: a.classifier.Classify(text).Scores}
	}
	return jd, nil
}

// Analyze scores a resume against a job description and explains the result.
// Persistence failures are logged and do not fail the analysis.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*types.AnalysisResult, error) {
	emit := func(step, msg string, content any) {
		if in.OnProgress != nil {
			in.OnProgress(ProgressEvent{Step: step, Message: msg, Content: content})
		}
	}

	// 1. Extract both documents concurrently
	var jd *types.ParsedJobDescription
	var resume *types.ParsedResume
	var sections map[string]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jd, err = a.ParseJobDescription(in.JobDescriptionText)
		return err
	})
	g.Go(func() error {
		resume = a.resumes.Extract(in.ResumeText)
		sections = parsing.ExtractSections(in.ResumeText)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		a.logger.Info("analysis rejected", zap.Error(err), zap.String("filename", in.Filename))
		return nil, err
	}
	emit(StepExtract, "Documents extracted", jd)
	a.logger.Debug("documents extracted",
		zap.String("job_type", string(jd.JobType)),
		zap.Int("required_skills", len(jd.RequiredSkills)),
		zap.Int("resume_evidence", len(resume.TechnicalSkillsWithEvidence)),
		zap.Float64("resume_years", resume.TotalExperienceYears))

	// 2. Score
	score := a.scorer.ScoreMatch(ctx, resume, jd)
	emit(StepScore, "Match scored", score)

	// 3. Explain
	explained := insights.Explain(score)
	emit(StepExplain, "Insights generated", explained)

	result := &types.AnalysisResult{
		ID:             a.newID(),
		Filename:       in.Filename,
		JDSource:       in.JDSource,
		Analysis:       types.NewAnalysisSummary(score),
		Insights:       explained,
		Sections:       sections,
		Detail:         score,
		JobDescription: jd,
		CreatedAt:      a.now().UTC(),
	}

	// 4. Persist
	if a.store != nil {
		if err := a.store.SaveAnalysis(ctx, result); err != nil {
			a.logger.Warn("failed to persist analysis", zap.String("id", result.ID), zap.Error(err))
		} else {
			emit(StepPersist, "Analysis saved", result.ID)
		}
	}

	a.logger.Info("analysis complete",
		zap.String("id", result.ID),
		zap.Int("overall_score", score.OverallScore),
		zap.String("job_type", string(jd.JobType)))

	return result, nil
}
