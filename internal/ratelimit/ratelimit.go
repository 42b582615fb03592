// Package ratelimit caps model usage per day so a verification run can
// never burn through the embedding quota.
package ratelimit

import (
	"log"
	"sync"
	"time"
)

// EmbedBudget counts embedding requests against a daily maximum.
// A zero maximum means unlimited.
type EmbedBudget struct {
	mu        sync.Mutex
	count     int
	max       int
	cacheHits int
	resetTime time.Time
}

func NewEmbedBudget(max int) *EmbedBudget {
	return &EmbedBudget{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether one more model request fits the budget.
func (b *EmbedBudget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()

	if b.max > 0 && b.count >= b.max {
		log.Printf("⚠️ embedding budget reached (%d/%d), switching to fallback", b.count, b.max)
		return false
	}
	return true
}

// Record counts one model request.
func (b *EmbedBudget) Record() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.checkReset()
	b.count++
}

// RecordCacheHit counts a request served from cache instead of the model.
func (b *EmbedBudget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

func (b *EmbedBudget) Stats() (used, max, cacheHits int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count, b.max, b.cacheHits
}

func (b *EmbedBudget) checkReset() {
	if time.Now().After(b.resetTime) {
		b.count = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
