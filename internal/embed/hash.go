package embed

import (
	"context"
	"hash/fnv"
	"strings"
)

// hashDim keeps the proxy vectors small; collisions are acceptable at
// this fidelity.
const hashDim = 64

// HashEmbedder is the degraded fallback: a feature-hashed bag of words.
// No model, no network, always available, deterministic. Texts sharing
// many tokens land close, unrelated texts land near-orthogonal, which
// is enough signal for the 0.7-weighted cosine term to stay meaningful.
type HashEmbedder struct{}

func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

func (e *HashEmbedder) Name() string { return "hash-fallback" }

func (e *HashEmbedder) Available() bool { return true }

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, hashDim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New64a()
		h.Write([]byte(tok))
		vec[h.Sum64()%hashDim]++
	}
	return vec, nil
}
