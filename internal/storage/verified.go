// Package storage persists pipeline artifacts: the dated verified-news
// JSON file the bulletin formatter consumes, plus sent-story history in
// a local file or PostgreSQL.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cgnews/internal/verify"
)

// VerifiedStore writes one verified-news artifact per calendar day.
// A same-day rerun overwrites the previous artifact.
type VerifiedStore struct {
	dir string
}

func NewVerifiedStore(dir string) *VerifiedStore {
	return &VerifiedStore{dir: dir}
}

// FileName returns the artifact path for a day.
func (s *VerifiedStore) FileName(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("verified_news_%s.json", day.Format("2006-01-02")))
}

// SaveVerified writes the digest atomically: marshal to a temp file in
// the same directory, then rename over the target. A failed run can
// never leave a partial or corrupted artifact behind.
func (s *VerifiedStore) SaveVerified(day time.Time, articles []verify.VerifiedArticle) error {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verified articles: %w", err)
	}

	target := s.FileName(day)
	tmp, err := os.CreateTemp(filepath.Dir(target), ".verified_news_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write verified articles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move verified articles into place: %w", err)
	}
	return nil
}

// LoadVerified reads a day's digest back, for the formatter or for
// inspection.
func (s *VerifiedStore) LoadVerified(day time.Time) ([]verify.VerifiedArticle, error) {
	data, err := os.ReadFile(s.FileName(day))
	if err != nil {
		return nil, fmt.Errorf("failed to read verified articles: %w", err)
	}
	var articles []verify.VerifiedArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verified articles: %w", err)
	}
	return articles, nil
}
