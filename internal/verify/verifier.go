// Package verify is the cross-source story verification engine: it
// filters opinion pieces out of the raw pool, clusters near-duplicate
// reports of the same event across independent sources, picks one
// canonical article per cluster and emits a ranked, bounded digest.
package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cgnews/internal/category"
	"cgnews/internal/logger"
	"cgnews/internal/metrics"
	"cgnews/internal/news"
)

// maxStories caps the final digest size.
const maxStories = 8

// opinionMarkers flag speculative or unverified framing. An article
// carrying more than two distinct markers is treated as opinion and
// never enters clustering.
var opinionMarkers = []string{
	"चाहिए", "कथित", "विचार", "राय", "मानना", "लगता", "संभावना",
	"अनुमान", "अटकल", "संदेह", "शायद", "हो सकता", "माना जा रहा",
	"सूत्रों के अनुसार", "अफवाह", "दावा", "आरोप",
}

const maxOpinionMarkers = 2

// VerifiedArticle is the canonical representative of an accepted
// cluster, enriched with corroboration and ranking data. Immutable
// once built.
type VerifiedArticle struct {
	news.Article

	ID                  int      `json:"id"`
	Verified            bool     `json:"verified"`
	SourceCount         int      `json:"source_count"`
	Sources             []string `json:"sources"`
	VerificationSources []string `json:"verification_sources"`
	Category            string   `json:"category"`
	Importance          float64  `json:"importance"`
	Summary             string   `json:"summary"`
	URLStatus           string   `json:"url_status"`
}

// Store persists the final digest; the bulletin formatter reads it back.
type Store interface {
	SaveVerified(day time.Time, articles []VerifiedArticle) error
}

// Verifier runs one self-contained verification batch per call. It
// keeps no state across runs; a run either completes or returns an
// error, partial output is never written.
type Verifier struct {
	scorer      *Scorer
	categorizer *category.Categorizer
	store       Store
	now         func() time.Time
}

// NewVerifier wires the pipeline. store may be nil for dry runs, the
// digest is then returned without being persisted.
func NewVerifier(scorer *Scorer, categorizer *category.Categorizer, store Store) *Verifier {
	return &Verifier{
		scorer:      scorer,
		categorizer: categorizer,
		store:       store,
		now:         time.Now,
	}
}

// Verify runs the full batch: opinion filter, clustering, per-cluster
// finalize, rank, truncate, persist. Empty input returns an empty list.
func (v *Verifier) Verify(ctx context.Context, raw []news.Article) ([]VerifiedArticle, error) {
	logger.Info("starting verification", "articles", len(raw))

	factual := make([]news.Article, 0, len(raw))
	for _, a := range raw {
		metrics.Global.IncrementArticlesProcessed()
		if IsOpinionPiece(a) {
			metrics.Global.IncrementOpinionFiltered()
			logger.Debug("dropped opinion piece", "title", a.Title, "source", a.Source)
			continue
		}
		factual = append(factual, a)
	}
	logger.Info("opinion filter done", "factual", len(factual), "dropped", len(raw)-len(factual))

	clusters := clusterArticles(ctx, v.scorer, factual)
	metrics.Global.AddClustersAccepted(len(clusters))
	logger.Info("clustering done", "accepted_clusters", len(clusters))

	verified := make([]VerifiedArticle, 0, len(clusters))
	for _, c := range clusters {
		best := c.Canonical()
		cat, importance := v.categorizer.Categorize(best.Title, best.Body)

		verified = append(verified, VerifiedArticle{
			Article:     best,
			Verified:    true,
			SourceCount: len(c.Members),
			Sources:     c.Sources(),
			Category:    cat,
			Importance:  importance,
		})
	}

	// Rank: importance first, then recency. ISO-8601 strings compare
	// chronologically.
	sort.SliceStable(verified, func(i, j int) bool {
		if verified[i].Importance != verified[j].Importance {
			return verified[i].Importance > verified[j].Importance
		}
		return verified[i].Timestamp > verified[j].Timestamp
	})

	if len(verified) > maxStories {
		verified = verified[:maxStories]
	}

	for i := range verified {
		verified[i].ID = i + 1
		verified[i].Summary = news.FirstSentence(verified[i].Body)
		verified[i].VerificationSources = verified[i].Sources
		verified[i].URLStatus = "active"
	}

	if v.store != nil {
		if err := v.store.SaveVerified(v.now(), verified); err != nil {
			metrics.Global.SetError(err.Error())
			return nil, fmt.Errorf("failed to persist verified articles: %w", err)
		}
	}

	metrics.Global.AddStoriesVerified(len(verified))
	logger.Info("verification complete", "stories", len(verified))
	return verified, nil
}

// IsOpinionPiece reports whether the article carries more than
// maxOpinionMarkers distinct opinion markers. Bulletins report verified
// fact, not speculation.
func IsOpinionPiece(a news.Article) bool {
	text := strings.ToLower(a.Text())

	count := 0
	for _, marker := range opinionMarkers {
		if strings.Contains(text, strings.ToLower(marker)) {
			count++
			if count > maxOpinionMarkers {
				return true
			}
		}
	}
	return false
}
