package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider names accepted by New
const (
	ProviderGemini = "gemini"
	ProviderHash   = "hash"
	ProviderNone   = "none"
)

// Options selects and configures an embedding backend
type Options struct {
	Provider string
	APIKey   string
	Model    string
	Cache    *CacheOptions
}

// New builds the configured backend, wrapped in a cache when Cache is set.
// The null backend is never cached.
func New(ctx context.Context, opts Options, logger *zap.Logger) (Embedder, error) {
	var base Embedder
	switch opts.Provider {
	case ProviderGemini:
		g, err := NewGemini(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		base = g
	case ProviderHash, "":
		base = NewHash(0)
	case ProviderNone:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}

	if opts.Cache == nil {
		return base, nil
	}
	return NewCached(ctx, base, *opts.Cache, logger), nil
}

// Close releases resources held by e, if any
func Close(e Embedder) error {
	if closer, ok := e.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
