package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/config"
	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/embedding"
	"github.com/jonathan/matchly/internal/matching"
	"github.com/jonathan/matchly/internal/parsing"
	"github.com/jonathan/matchly/internal/pipeline"
	"github.com/jonathan/matchly/internal/ranking"
	"github.com/jonathan/matchly/internal/taxonomy"
)

// engine bundles the components built from the loaded configuration
type engine struct {
	taxonomy   *taxonomy.Taxonomy
	normalizer *parsing.Normalizer
	embedder   embedding.Embedder
	matcher    *matching.Matcher
	scorer     *ranking.Scorer
	analyzer   *pipeline.Analyzer
	store      db.Store
}

// loadTaxonomy returns the built-in taxonomy unless a file override is configured
func loadTaxonomy(c config.Config) (*taxonomy.Taxonomy, error) {
	if c.TaxonomyPath == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadFile(c.TaxonomyPath)
}

// newEngine wires the matching stack. withStore opens the configured analysis
// store; a missing backend leaves history disabled.
func newEngine(ctx context.Context, c config.Config, withStore bool, log *zap.Logger) (*engine, error) {
	tax, err := loadTaxonomy(c)
	if err != nil {
		return nil, err
	}
	norm := parsing.NewNormalizer(tax)

	emb, err := embedding.New(ctx, embedding.Options{
		Provider: c.EmbeddingProvider,
		APIKey:   c.GeminiAPIKey,
		Model:    c.EmbeddingModel,
		Cache: &embedding.CacheOptions{
			RedisURL:   c.RedisURL,
			TTL:        c.CacheTTL,
			MaxEntries: c.CacheMaxEntries,
		},
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	e := &engine{taxonomy: tax, normalizer: norm, embedder: emb}

	if withStore {
		store, err := db.Open(ctx, db.Options{DatabaseURL: c.DatabaseURL, SQLitePath: c.SQLitePath})
		switch {
		case errors.Is(err, db.ErrNoBackend):
			log.Info("no analysis store configured, history disabled")
		case err != nil:
			_ = embedding.Close(emb)
			return nil, fmt.Errorf("failed to open analysis store: %w", err)
		default:
			e.store = store
		}
	}

	e.matcher = matching.New(emb, norm, log)
	e.scorer = ranking.NewScorer(e.matcher, norm, log).WithThreshold(c.MatchThreshold)

	var saver pipeline.Saver
	if e.store != nil {
		saver = e.store
	}
	e.analyzer = pipeline.NewAnalyzer(e.scorer, norm, saver, log)

	log.Debug("engine ready",
		zap.String("embedding", emb.Name()),
		zap.Bool("embedding_available", emb.Available()),
		zap.Int("taxonomy_skills", len(tax.Skills())),
		zap.Bool("history", e.store != nil))
	return e, nil
}

// Close releases the store and embedder connections
func (e *engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = embedding.Close(e.embedder)
}
