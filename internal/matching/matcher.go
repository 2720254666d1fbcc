// Package matching pairs job requirements with resume evidence using exact,
// taxonomic and embedding similarity.
package matching

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/matchly/internal/embedding"
	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/types"
)

// Matcher compares requirement lists against evidence lists.
// It holds only read-only references and is safe for concurrent use.
type Matcher struct {
	emb    embedding.Embedder
	norm   *parsing.Normalizer
	logger *zap.Logger
}

// New creates a matcher. A nil embedder selects embedding.Null, a nil
// normalizer the built-in taxonomy and a nil logger a no-op logger.
func New(emb embedding.Embedder, norm *parsing.Normalizer, logger *zap.Logger) *Matcher {
	if emb == nil {
		emb = embedding.Null{}
	}
	if norm == nil {
		norm = parsing.NewNormalizer(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{emb: emb, norm: norm, logger: logger}
}

// Normalizer returns the normalizer used for canonical comparison
func (m *Matcher) Normalizer() *parsing.Normalizer {
	return m.norm
}

// Embedder returns the embedding backend
func (m *Matcher) Embedder() embedding.Embedder {
	return m.emb
}

// Match returns one result per requirement, in input order. A threshold <= 0
// selects DefaultThreshold.
//
// Requirements are embedded as given and evidence after normalization, each
// list in a single batch. When embeddings cannot be computed only exact
// canonical matches score; everything else is missing.
func (m *Matcher) Match(ctx context.Context, requirements, evidence []string, threshold float64) []types.MatchResult {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	results := make([]types.MatchResult, 0, len(requirements))
	if len(requirements) == 0 {
		return results
	}

	normEvidence := m.norm.NormalizeAll(evidence)
	reqVecs, evVecs := m.embedPair(ctx, requirements, normEvidence)
	semantic := reqVecs != nil

	tax := m.norm.Taxonomy()
	for i, req := range requirements {
		normReq := m.norm.Normalize(req)
		best := -1.0
		bestIdx := -1

		for j, normEv := range normEvidence {
			var score float64
			switch {
			case normReq == normEv:
				score = 1.0
			case !semantic:
				score = 0
			default:
				score = embedding.Cosine(reqVecs[i], evVecs[j])
				if cat, ok := tax.SharedCategory(normReq, normEv); ok {
					factor, floor := Boost(cat, normReq, normEv)
					score = applyBoost(score, factor, floor)
				}
			}
			if score > best {
				best = score
				bestIdx = j
			}
		}

		results = append(results, newResult(req, evidence, bestIdx, best, threshold))
	}

	return results
}

func newResult(req string, evidence []string, bestIdx int, best, threshold float64) types.MatchResult {
	confidence := clamp01(round2(best))
	status := Classify(best, threshold)
	if bestIdx < 0 {
		confidence, status = 0, types.StatusMissing
	}

	result := types.MatchResult{
		Requirement: req,
		Confidence:  confidence,
		Status:      status,
	}
	if status != types.StatusMissing {
		match := evidence[bestIdx]
		result.BestMatch = &match
	}
	return result
}

// embedPair embeds both lists concurrently. It returns nil vectors, after a
// warning, when the backend is unavailable or either call fails.
func (m *Matcher) embedPair(ctx context.Context, requirements, evidence []string) ([][]float32, [][]float32) {
	if len(evidence) == 0 {
		return nil, nil
	}
	if !m.emb.Available() {
		m.logger.Warn("embedding backend unavailable, falling back to exact matching",
			zap.String("backend", m.emb.Name()))
		return nil, nil
	}

	var reqVecs, evVecs [][]float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reqVecs, err = m.emb.Embed(gctx, requirements)
		return err
	})
	g.Go(func() error {
		var err error
		evVecs, err = m.emb.Embed(gctx, evidence)
		return err
	})
	if err := g.Wait(); err != nil {
		m.logger.Warn("embedding failed, falling back to exact matching",
			zap.String("backend", m.emb.Name()),
			zap.Error(err))
		return nil, nil
	}
	if len(reqVecs) != len(requirements) || len(evVecs) != len(evidence) {
		m.logger.Warn("embedding returned wrong vector count, falling back to exact matching",
			zap.Int("requirements", len(requirements)), zap.Int("requirement_vectors", len(reqVecs)),
			zap.Int("evidence", len(evidence)), zap.Int("evidence_vectors", len(evVecs)))
		return nil, nil
	}
	return reqVecs, evVecs
}

// Similarity returns the cosine similarity of two free texts, clamped to [0, 1].
// ok is false when either text is blank or the embedder cannot serve the request.
func (m *Matcher) Similarity(ctx context.Context, a, b string) (sim float64, ok bool) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" || !m.emb.Available() {
		return 0, false
	}
	vecs, err := m.emb.Embed(ctx, []string{a, b})
	if err != nil || len(vecs) != 2 {
		m.logger.Warn("similarity embedding failed", zap.String("backend", m.emb.Name()), zap.Error(err))
		return 0, false
	}
	return clamp01(embedding.Cosine(vecs[0], vecs[1])), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
