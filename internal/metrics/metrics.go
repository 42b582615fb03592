package metrics

import (
	"sync"
	"time"
)

// Metrics are process-wide pipeline counters, exposed over the
// monitoring endpoints in cmd/cgnews.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesScraped    int64
	ArticlesProcessed  int64
	OpinionFiltered    int64
	ClustersAccepted   int64
	StoriesVerified    int64
	EmbeddingFallbacks int64
	BulletinsSent      int64
	AuditFlags         int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64
	AverageRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementArticlesScraped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScraped += int64(n)
}

func (m *Metrics) IncrementArticlesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesProcessed++
}

func (m *Metrics) IncrementOpinionFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpinionFiltered++
}

func (m *Metrics) AddClustersAccepted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClustersAccepted += int64(n)
}

func (m *Metrics) AddStoriesVerified(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoriesVerified += int64(n)
}

func (m *Metrics) IncrementEmbeddingFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmbeddingFallbacks++
}

func (m *Metrics) IncrementBulletinsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BulletinsSent++
}

func (m *Metrics) AddAuditFlags(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuditFlags += int64(n)
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_scraped":        m.ArticlesScraped,
		"articles_processed":      m.ArticlesProcessed,
		"opinion_filtered":        m.OpinionFiltered,
		"clusters_accepted":       m.ClustersAccepted,
		"stories_verified":        m.StoriesVerified,
		"embedding_fallbacks":     m.EmbeddingFallbacks,
		"bulletins_sent":          m.BulletinsSent,
		"audit_flags":             m.AuditFlags,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
