package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultGeminiModel is the embedding model used when none is configured
	DefaultGeminiModel = "text-embedding-004"
	// geminiBatchLimit is the maximum number of texts per BatchEmbedContents call
	geminiBatchLimit = 100
)

// Gemini embeds text with a Google Gemini embedding model
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini embedder
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Embed sends texts in batches of at most geminiBatchLimit
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	em := g.client.EmbeddingModel(g.model)
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += geminiBatchLimit {
		end := min(start+geminiBatchLimit, len(texts))

		batch := em.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch: %w", err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embedding count mismatch: sent %d, got %d", end-start, len(resp.Embeddings))
		}
		for _, e := range resp.Embeddings {
			out = append(out, e.Values)
		}
	}

	return out, nil
}

// Available returns true; failures surface from Embed
func (g *Gemini) Available() bool { return true }

// Name returns the provider and model
func (g *Gemini) Name() string { return ProviderGemini + ":" + g.model }

// Close releases the underlying client
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
