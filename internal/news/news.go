// Package news holds the raw article model shared by the scraper,
// verifier and bulletin stages.
package news

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Article is one raw report from a single source. Several articles from
// different sources may describe the same physical event; the verifier
// groups those later.
type Article struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // ISO-8601; empty when the source gave none
}

// Text returns the title and body joined, the unit every keyword and
// similarity check runs over.
func (a Article) Text() string {
	return strings.TrimSpace(a.Title + " " + a.Body)
}

// PublishedAt parses the timestamp. Returns zero time for empty or
// malformed values, callers treat that as "unknown, oldest".
func (a Article) PublishedAt() time.Time {
	if a.Timestamp == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, a.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FirstSentence cuts text at the first sentence terminator. Hindi copy
// ends sentences with the danda (।), wire copy sometimes with Latin
// punctuation, so both are honored.
func FirstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		switch r {
		case '।', '.', '!', '?':
			return strings.TrimSpace(text[:i+len(string(r))])
		}
	}
	return text
}

// RawFileName returns the raw pool artifact path for one calendar day.
func RawFileName(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("raw_news_%s.json", day.Format("2006-01-02")))
}

// LoadRaw reads a same-day raw-articles JSON file written by the scraper.
func LoadRaw(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw articles: %w", err)
	}
	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw articles: %w", err)
	}
	return articles, nil
}

// SaveRaw writes the scraped pool so a rerun can skip scraping.
func SaveRaw(path string, articles []Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal raw articles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write raw articles: %w", err)
	}
	return nil
}
