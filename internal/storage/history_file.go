package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// History records which verified stories already went out in a
// bulletin, so a same-day rerun or the next morning's run does not
// repeat them.
type History interface {
	GenerateStoryHash(title, source string) string
	WasSent(hash string) bool
	MarkSent(hash, title, url, category, source string) error
	Close() error
}

// SentStory is one bulletin entry already delivered.
type SentStory struct {
	Hash     string    `json:"hash"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Category string    `json:"category"`
	Source   string    `json:"source"`
	SentAt   time.Time `json:"sent_at"`
}

// FileHistory keeps sent-story history in a JSON file.
type FileHistory struct {
	filePath string
	ttlHours int
	items    map[string]SentStory
	mu       sync.RWMutex
}

func NewFileHistory(filePath string, ttlHours int) *FileHistory {
	return &FileHistory{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]SentStory),
	}
}

// Load reads existing history from file, dropping expired entries.
func (h *FileHistory) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := os.Stat(h.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(h.filePath)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []SentStory
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(h.ttlHours) * time.Hour)
	for _, item := range items {
		if item.SentAt.After(cutoff) {
			h.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes current history to file.
func (h *FileHistory) Save() error {
	h.mu.RLock()
	items := make([]SentStory, 0, len(h.items))
	for _, item := range h.items {
		items = append(items, item)
	}
	h.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(h.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// GenerateStoryHash builds a stable hash from normalized title + source.
func (h *FileHistory) GenerateStoryHash(title, source string) string {
	return storyHash(title, source)
}

func (h *FileHistory) WasSent(hash string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	item, exists := h.items[hash]
	if !exists {
		return false
	}
	cutoff := time.Now().Add(-time.Duration(h.ttlHours) * time.Hour)
	return item.SentAt.After(cutoff)
}

func (h *FileHistory) MarkSent(hash, title, url, category, source string) error {
	h.mu.Lock()
	h.items[hash] = SentStory{
		Hash:     hash,
		Title:    title,
		URL:      url,
		Category: category,
		Source:   source,
		SentAt:   time.Now(),
	}
	h.mu.Unlock()
	return h.Save()
}

// Close flushes the history to disk.
func (h *FileHistory) Close() error {
	return h.Save()
}

func storyHash(title, source string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = strings.Join(strings.Fields(normalized), " ")

	sum := sha256.Sum256([]byte(normalized + "|" + strings.ToLower(source)))
	return hex.EncodeToString(sum[:])[:16]
}
