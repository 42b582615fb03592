package news

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFirstSentence(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"danda", "पुलिस ने आरोपी को पकड़ा। जांच जारी है।", "पुलिस ने आरोपी को पकड़ा।"},
		{"latin period", "First sentence. Second sentence.", "First sentence."},
		{"question mark", "क्या हुआ? पता नहीं।", "क्या हुआ?"},
		{"no terminator", "बिना विराम का वाक्य", "बिना विराम का वाक्य"},
		{"empty", "", ""},
		{"leading whitespace", "  आज की खबर।", "आज की खबर।"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FirstSentence(tc.text); got != tc.want {
				t.Errorf("FirstSentence(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestArticleText(t *testing.T) {
	a := Article{Title: "शीर्षक", Body: "मुख्य भाग"}
	if got := a.Text(); got != "शीर्षक मुख्य भाग" {
		t.Errorf("Text = %q", got)
	}

	empty := Article{}
	if got := empty.Text(); got != "" {
		t.Errorf("empty article Text = %q, want empty", got)
	}
}

func TestPublishedAt(t *testing.T) {
	a := Article{Timestamp: "2025-08-26T09:30:00+05:30"}
	got := a.PublishedAt()
	if got.IsZero() {
		t.Fatal("valid timestamp parsed as zero")
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("PublishedAt = %v", got)
	}

	for _, bad := range []string{"", "not-a-date", "2025-13-99"} {
		if ts := (Article{Timestamp: bad}).PublishedAt(); !ts.IsZero() {
			t.Errorf("malformed timestamp %q parsed to %v, want zero", bad, ts)
		}
	}
}

func TestRawFileName(t *testing.T) {
	day := time.Date(2025, 8, 26, 17, 0, 0, 0, time.UTC)
	want := filepath.Join("data", "raw_news_2025-08-26.json")
	if got := RawFileName("data", day); got != want {
		t.Errorf("RawFileName = %q, want %q", got, want)
	}
}

func TestSaveLoadRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")

	articles := []Article{
		{Source: "patrika", Title: "शीर्षक", Body: "खबर।", URL: "https://example.com/1", Timestamp: "2025-08-26T09:00:00+05:30"},
		{Source: "ibc24", Title: "दूसरी खबर"},
	}

	if err := SaveRaw(path, articles); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}

	got, err := LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if !reflect.DeepEqual(got, articles) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, articles)
	}
}

func TestLoadRaw_MissingFile(t *testing.T) {
	if _, err := LoadRaw(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
