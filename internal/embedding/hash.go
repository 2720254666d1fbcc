package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultHashDimensions is the vector size of the hashing embedder
const DefaultHashDimensions = 256

// Hash is a deterministic, dependency-free embedder. It hashes character
// trigrams and whole words into a fixed number of signed buckets and
// L2-normalizes the result, so strings sharing spelling fragments land near
// each other. It captures surface similarity only.
type Hash struct {
	dims int
}

// NewHash creates a hashing embedder. dims <= 0 selects DefaultHashDimensions.
func NewHash(dims int) *Hash {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &Hash{dims: dims}
}

// Embed hashes every text. It never fails unless the context is done.
func (h *Hash) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = h.vector(t)
	}
	return out, nil
}

// Available returns true
func (h *Hash) Available() bool { return true }

// Name returns "hash"
func (h *Hash) Name() string { return ProviderHash }

func (h *Hash) vector(text string) []float32 {
	v := make([]float32, h.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h.add(v, "w:"+word, 1)
		padded := []rune(" " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			h.add(v, string(padded[i:i+3]), 1)
		}
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= scale
	}
	return v
}

func (h *Hash) add(v []float32, feature string, weight float32) {
	f := fnv.New64a()
	_, _ = f.Write([]byte(feature))
	sum := f.Sum64()
	idx := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	v[idx] += weight
}
