package verify

import (
	"context"

	"cgnews/internal/news"
)

const (
	// similarityThreshold is the minimum pairwise score for two reports
	// to count as the same event.
	similarityThreshold = 0.8
	// minSources is the corroboration threshold: a story needs this many
	// independent reports to be accepted as verified.
	minSources = 3
)

// Cluster is a non-empty group of articles judged to report the same
// event. Every member scored >= similarityThreshold against the seed
// (the first member); members are not re-scored against each other.
type Cluster struct {
	Members []news.Article
}

// clusterArticles groups same-event reports with a single seed-and-absorb
// pass. Each unprocessed article seeds a group and absorbs every later
// unprocessed article similar enough to the seed. Because similarity is
// not transitive, membership depends on input order; that is a documented
// property of the contract, identical input order always yields identical
// clusters. Groups below minSources are dropped, not retried against
// other seeds.
func clusterArticles(ctx context.Context, scorer *Scorer, articles []news.Article) []Cluster {
	var clusters []Cluster
	processed := make([]bool, len(articles))

	for i, seed := range articles {
		if processed[i] {
			continue
		}
		processed[i] = true
		group := []news.Article{seed}

		for j := i + 1; j < len(articles); j++ {
			if processed[j] {
				continue
			}
			if scorer.Similarity(ctx, seed, articles[j]) >= similarityThreshold {
				group = append(group, articles[j])
				processed[j] = true
			}
		}

		if len(group) >= minSources {
			clusters = append(clusters, Cluster{Members: group})
		}
	}

	return clusters
}

// Canonical picks the member that stands for the whole cluster: longest
// body first, most recent timestamp as the tie-break. Timestamps are
// ISO-8601 strings, so the lexicographic comparison is chronological.
func (c Cluster) Canonical() news.Article {
	best := c.Members[0]
	for _, m := range c.Members[1:] {
		if len(m.Body) > len(best.Body) ||
			(len(m.Body) == len(best.Body) && m.Timestamp > best.Timestamp) {
			best = m
		}
	}
	return best
}

// Sources lists the source ids of all members in cluster order.
func (c Cluster) Sources() []string {
	sources := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		sources = append(sources, m.Source)
	}
	return sources
}
