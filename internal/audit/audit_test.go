package audit

import (
	"strings"
	"testing"
)

func TestAudit_CleanContent(t *testing.T) {
	a := NewAuditor()

	res := a.Audit("bulletin_1", "summary", "पुलिस ने रायपुर में आरोपी को गिरफ्तार किया।")

	if !res.Clean {
		t.Errorf("neutral news text flagged: words=%v categories=%v", res.FlaggedWords, res.FlaggedCategories)
	}
	if res.Severity != SeverityNone {
		t.Errorf("severity = %v, want none", res.Severity)
	}
}

func TestAudit_EmptyContent(t *testing.T) {
	a := NewAuditor()

	res := a.Audit("bulletin_1", "summary", "   ")

	if res.Clean {
		t.Error("empty content must be flagged")
	}
	if len(res.FlaggedCategories) != 1 || res.FlaggedCategories[0] != CategoryEmptyContent {
		t.Errorf("categories = %v, want [%s]", res.FlaggedCategories, CategoryEmptyContent)
	}
	if res.Severity != SeverityMedium {
		t.Errorf("severity = %v, want medium", res.Severity)
	}
}

func TestAudit_SeverityPerCategory(t *testing.T) {
	a := NewAuditor()

	cases := []struct {
		name string
		text string
		want Severity
	}{
		{"profanity", "वह बेवकूफ निकला", SeverityHigh},
		{"abusive", "बदमाश पकड़ा गया", SeverityHigh},
		{"sensational", "शहर में धमाका जैसी खबर से हड़कंप", SeverityMedium},
		{"unverified", "सूत्रों की मानें तो फैसला हुआ", SeverityMedium},
		{"casual slang", "काम की सेटिंग हो गई", SeverityLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := a.Audit("c", "summary", tc.text)
			if res.Clean {
				t.Fatalf("%q should be flagged", tc.text)
			}
			if res.Severity != tc.want {
				t.Errorf("severity = %v, want %v", res.Severity, tc.want)
			}
		})
	}
}

func TestAudit_HighestSeverityWins(t *testing.T) {
	a := NewAuditor()

	// Casual slang and profanity together: profanity dominates.
	res := a.Audit("c", "summary", "बेवकूफ का जुगाड़")
	if res.Severity != SeverityHigh {
		t.Errorf("severity = %v, want high", res.Severity)
	}
}

func TestClean_AppliesReplacements(t *testing.T) {
	a := NewAuditor()

	text := "शहर में धमाका जैसी घटना से हड़कंप मचा"
	res := a.Audit("c", "summary", text)
	cleaned := a.Clean(text, res)

	if strings.Contains(cleaned, "धमाका") || strings.Contains(cleaned, "हड़कंप") {
		t.Errorf("flagged words survived cleaning: %q", cleaned)
	}
	if !strings.Contains(cleaned, "घटना") || !strings.Contains(cleaned, "हलचल") {
		t.Errorf("professional replacements missing: %q", cleaned)
	}
}

func TestClean_RemovesWordsWithoutReplacement(t *testing.T) {
	a := NewAuditor()

	text := "वह साला भाग गया"
	res := a.Audit("c", "summary", text)
	cleaned := a.Clean(text, res)

	if strings.Contains(cleaned, "साला") {
		t.Errorf("word without replacement survived: %q", cleaned)
	}
	if strings.Contains(cleaned, filteredPlaceholder) {
		t.Errorf("placeholder leaked into output: %q", cleaned)
	}
	if strings.Contains(cleaned, "  ") {
		t.Errorf("double spaces after removal: %q", cleaned)
	}
}

func TestSimulateTranscript(t *testing.T) {
	bulletin := "🌄 *छत्तीसगढ़ समाचार*\n🚨 1. रायपुर में गिरफ्तारी।"

	got := SimulateTranscript(bulletin)

	if strings.ContainsAny(got, "🌄🚨*") {
		t.Errorf("markup and emoji must vanish from transcript: %q", got)
	}
	if !strings.Contains(got, "रायपुर में गिरफ्तारी।") {
		t.Errorf("words must survive transcript simulation: %q", got)
	}
}

func TestComprehensiveAudit(t *testing.T) {
	a := NewAuditor()

	report := a.ComprehensiveAudit("bulletin_1", "🚨 शहर में धमाका जैसी खबर")

	if report.Summary == nil || report.Transcript == nil {
		t.Fatal("report must audit both variants")
	}
	if report.OverallSeverity != SeverityMedium {
		t.Errorf("overall severity = %v, want medium", report.OverallSeverity)
	}
	if alert := report.Alert("bulletin_1"); alert == "" {
		t.Error("flagged report must produce an alert")
	}
}

func TestComprehensiveAudit_CleanHasNoAlert(t *testing.T) {
	a := NewAuditor()

	report := a.ComprehensiveAudit("bulletin_1", "पुलिस ने आरोपी को गिरफ्तार किया।")
	if report.OverallSeverity != SeverityNone {
		t.Errorf("overall severity = %v, want none", report.OverallSeverity)
	}
	if alert := report.Alert("bulletin_1"); alert != "" {
		t.Errorf("clean report produced alert: %q", alert)
	}
}
