// Package embedding provides the vector embedding capability used by the semantic
// matcher. Backends are interchangeable strategies selected at startup: Gemini for
// real semantic vectors, a deterministic hashing embedder for offline use, and a
// null backend that reports itself unavailable.
package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrUnavailable is returned by backends that cannot produce embeddings
var ErrUnavailable = errors.New("embedding backend unavailable")

// Embedder computes one vector per input text. Implementations must be safe for
// concurrent use and must return vectors in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Available reports whether Embed can succeed at all
	Available() bool
	// Name identifies the backend and model, used in cache keys and logs
	Name() string
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Mismatched lengths or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, sim))
}

// Null is the always-unavailable backend
type Null struct{}

// Embed always fails with ErrUnavailable
func (Null) Embed(context.Context, []string) ([][]float32, error) {
	return nil, ErrUnavailable
}

// Available returns false
func (Null) Available() bool { return false }

// Name returns "none"
func (Null) Name() string { return ProviderNone }
