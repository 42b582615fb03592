package verify

import (
	"testing"

	"cgnews/internal/news"
)

func TestExtractKeyElements(t *testing.T) {
	a := news.Article{
		Title: "रायपुर में हत्या के आरोपी गिरफ्तार",
		Body:  "पुलिस ने आज रायपुर में कार्रवाई की। मुख्यमंत्री ने बयान दिया।",
	}

	el := ExtractKeyElements(a)

	if !el.Where["रायपुर"] {
		t.Errorf("where should contain रायपुर, got %v", el.Where)
	}
	if !el.What["हत्या"] || !el.What["गिरफ्तार"] {
		t.Errorf("what should contain हत्या and गिरफ्तार, got %v", el.What)
	}
	if !el.Who["पुलिस"] || !el.Who["मुख्यमंत्री"] {
		t.Errorf("who should contain पुलिस and मुख्यमंत्री, got %v", el.Who)
	}
	if !el.When["आज"] {
		t.Errorf("when should contain आज, got %v", el.When)
	}
}

func TestExtractKeyElements_PlaceSuffix(t *testing.T) {
	// Generic place-name suffixes match towns outside the fixed list.
	a := news.Article{Title: "कोंडागांव से जगदलपुर तक", Body: "रामनगर में कार्यक्रम हुआ।"}

	el := ExtractKeyElements(a)
	if !el.Where["जगदलपुर"] {
		t.Errorf("listed city जगदलपुर missing, got %v", el.Where)
	}
	if !el.Where["रामनगर"] {
		t.Errorf("suffix match रामनगर missing, got %v", el.Where)
	}
}

func TestExtractKeyElements_NoSignals(t *testing.T) {
	el := ExtractKeyElements(news.Article{Title: "plain english headline", Body: "nothing here"})

	for name, set := range map[string]map[string]bool{
		"who": el.Who, "what": el.What, "where": el.Where, "when": el.When,
	} {
		if len(set) != 0 {
			t.Errorf("%s should be empty for signal-free text, got %v", name, set)
		}
	}
}

func TestJaccard(t *testing.T) {
	set := func(ks ...string) map[string]bool {
		m := make(map[string]bool, len(ks))
		for _, k := range ks {
			m[k] = true
		}
		return m
	}

	cases := []struct {
		name string
		a, b map[string]bool
		want float64
	}{
		{"identical", set("x", "y"), set("x", "y"), 1.0},
		{"disjoint", set("x"), set("y"), 0.0},
		{"half", set("x", "y"), set("y", "z"), 1.0 / 3.0},
		{"both empty", set(), set(), 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := jaccard(tc.a, tc.b); got != tc.want {
				t.Errorf("jaccard = %v, want %v", got, tc.want)
			}
		})
	}
}
