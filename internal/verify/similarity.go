package verify

import (
	"context"
	"log"

	"cgnews/internal/embed"
	"cgnews/internal/metrics"
	"cgnews/internal/news"
)

// Weights for combining the semantic and structural signals.
const (
	embeddingWeight = 0.7
	elementWeight   = 0.3
)

// Scorer combines embedding cosine similarity with key-element overlap
// into one score in [0,1]. The score is symmetric but NOT transitive:
// A~B and B~C does not imply A~C, the clusterer must never assume it.
//
// Vectors and key elements are memoized for the duration of one run; a
// Scorer is built fresh per verification batch.
type Scorer struct {
	primary  embed.Embedder
	fallback embed.Embedder

	vecs     map[string][]float32
	elements map[string]KeyElements
}

// NewScorer builds a scorer. primary may be nil (model unavailable at
// startup), every embedding then comes from the deterministic fallback.
func NewScorer(primary embed.Embedder) *Scorer {
	return &Scorer{
		primary:  primary,
		fallback: embed.NewHashEmbedder(),
		vecs:     make(map[string][]float32),
		elements: make(map[string]KeyElements),
	}
}

// Similarity returns 0.7*cosine + 0.3*element overlap for two articles.
// Element overlap averages Jaccard over the who/what/where/when fields
// that are non-empty on BOTH sides; with no qualifying field it is 0.
func (s *Scorer) Similarity(ctx context.Context, a, b news.Article) float64 {
	embSim := embed.CosineSimilarity(s.vector(ctx, a), s.vector(ctx, b))
	if embSim < 0 {
		embSim = 0
	}

	ea := s.keyElements(a)
	eb := s.keyElements(b)

	elemSim := 0.0
	fields := 0
	for _, pair := range [][2]map[string]bool{
		{ea.Who, eb.Who},
		{ea.What, eb.What},
		{ea.Where, eb.Where},
		{ea.When, eb.When},
	} {
		if len(pair[0]) > 0 && len(pair[1]) > 0 {
			elemSim += jaccard(pair[0], pair[1])
			fields++
		}
	}
	if fields > 0 {
		elemSim /= float64(fields)
	}

	return embeddingWeight*embSim + elementWeight*elemSim
}

// vector embeds the article text, trying the model first and falling
// back to the hash proxy on any error. One article's failure degrades
// only that article, never the batch.
func (s *Scorer) vector(ctx context.Context, a news.Article) []float32 {
	text := a.Text()
	if vec, ok := s.vecs[text]; ok {
		return vec
	}

	var vec []float32
	if s.primary != nil && s.primary.Available() {
		v, err := s.primary.Embed(ctx, text)
		if err == nil {
			vec = v
		} else {
			log.Printf("⚠️ embedding failed for %q, using fallback: %v", a.Title, err)
			metrics.Global.IncrementEmbeddingFallbacks()
		}
	}
	if vec == nil {
		// fallback never errors
		vec, _ = s.fallback.Embed(ctx, text)
	}

	s.vecs[text] = vec
	return vec
}

func (s *Scorer) keyElements(a news.Article) KeyElements {
	text := a.Text()
	if e, ok := s.elements[text]; ok {
		return e
	}
	e := ExtractKeyElements(a)
	s.elements[text] = e
	return e
}
