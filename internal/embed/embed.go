// Package embed turns article text into fixed-size vectors for the
// similarity scorer. Two implementations exist: a model-backed embedder
// (Gemini text-embedding-004) and a deterministic hash proxy used when
// no model is reachable. The proxy trades accuracy for availability, a
// degraded score is always preferred over a failed run.
package embed

import (
	"context"
	"math"
)

// Embedder generates a vector embedding from text. Embed must be
// deterministic for identical input.
type Embedder interface {
	// Name identifies the implementation in logs and stats.
	Name() string
	// Available reports whether the backend can serve requests right now.
	Available() bool
	// Embed generates the vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CosineSimilarity computes similarity between two embeddings.
// Returns 1.0 for identical direction, 0.0 for orthogonal vectors,
// and 0.0 when lengths differ or either vector is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
