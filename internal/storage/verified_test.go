package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cgnews/internal/news"
	"cgnews/internal/verify"
)

func testVerified(id int, title string) verify.VerifiedArticle {
	return verify.VerifiedArticle{
		Article: news.Article{
			Source:    "patrika",
			Title:     title,
			Body:      "पुलिस ने कार्रवाई की।",
			URL:       "https://example.com/1",
			Timestamp: "2025-08-26T09:00:00+05:30",
		},
		ID:                  id,
		Verified:            true,
		SourceCount:         3,
		Sources:             []string{"patrika", "ibc24", "haribhoomi"},
		VerificationSources: []string{"patrika", "ibc24", "haribhoomi"},
		Category:            "crime",
		Importance:          3.0,
		Summary:             "पुलिस ने कार्रवाई की।",
		URLStatus:           "active",
	}
}

func TestVerifiedStore_RoundTrip(t *testing.T) {
	store := NewVerifiedStore(t.TempDir())
	day := time.Date(2025, 8, 26, 17, 0, 0, 0, time.UTC)

	want := []verify.VerifiedArticle{testVerified(1, "रायपुर में गिरफ्तारी")}
	if err := store.SaveVerified(day, want); err != nil {
		t.Fatalf("SaveVerified: %v", err)
	}

	got, err := store.LoadVerified(day)
	if err != nil {
		t.Fatalf("LoadVerified: %v", err)
	}
	if len(got) != 1 || got[0].Title != want[0].Title || got[0].ID != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got[0].URLStatus != "active" || got[0].SourceCount != 3 {
		t.Errorf("verification fields lost: %+v", got[0])
	}
}

func TestVerifiedStore_FileName(t *testing.T) {
	store := NewVerifiedStore("data")
	day := time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC)

	want := filepath.Join("data", "verified_news_2025-08-26.json")
	if got := store.FileName(day); got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestVerifiedStore_SameDayOverwrite(t *testing.T) {
	store := NewVerifiedStore(t.TempDir())
	day := time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC)

	if err := store.SaveVerified(day, []verify.VerifiedArticle{testVerified(1, "पहली खबर")}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveVerified(day, []verify.VerifiedArticle{testVerified(1, "दूसरी खबर")}); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadVerified(day)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "दूसरी खबर" {
		t.Errorf("rerun must overwrite the day's artifact, got %+v", got)
	}
}

func TestVerifiedStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewVerifiedStore(dir)
	day := time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC)

	if err := store.SaveVerified(day, []verify.VerifiedArticle{testVerified(1, "खबर")}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the artifact in %s, got %d entries", dir, len(entries))
	}
}

func TestVerifiedStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store := NewVerifiedStore(dir)
	day := time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC)

	if err := store.SaveVerified(day, nil); err != nil {
		t.Fatalf("SaveVerified should create missing dirs: %v", err)
	}
	if _, err := os.Stat(store.FileName(day)); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
}

func TestVerifiedStore_LoadMissingDay(t *testing.T) {
	store := NewVerifiedStore(t.TempDir())
	if _, err := store.LoadVerified(time.Now()); err == nil {
		t.Error("expected error for missing artifact")
	}
}
