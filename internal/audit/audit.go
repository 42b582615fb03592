// Package audit checks generated bulletin text (and simulated audio
// transcripts) for profanity, slang and editorially inappropriate
// language. Each run returns an explicit Result; nothing is accumulated
// in package state, the caller aggregates across runs.
package audit

import (
	"fmt"
	"strings"
	"unicode"

	"cgnews/internal/metrics"
)

// Severity of flagged content, highest category wins.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "none"
	}
}

// Keyword categories, ordered by the severity they imply.
const (
	CategoryProfanity    = "profanity"
	CategoryAbusive      = "abusive_language"
	CategorySensational  = "sensational_words"
	CategoryUnverified   = "controversial_unverified"
	CategoryCasual       = "inappropriate_casual"
	CategoryEmptyContent = "empty_content"
)

// Result is the outcome of auditing one piece of content.
type Result struct {
	ContentID         string
	ContentType       string
	Clean             bool
	FlaggedWords      []string
	FlaggedCategories []string
	Replacements      map[string]string
	Severity          Severity
}

// Report combines the audits of a bulletin and its simulated audio
// transcript for one run.
type Report struct {
	Summary         *Result
	Transcript      *Result
	OverallSeverity Severity
}

// Auditor holds the keyword lists and professional replacements. Lists
// are injected so editorial policy can be tuned without code changes.
type Auditor struct {
	lists        map[string][]string
	replacements map[string]string
}

// NewAuditor returns an auditor with the built-in Hindi editorial lists.
func NewAuditor() *Auditor {
	return &Auditor{
		lists: map[string][]string{
			CategoryProfanity: {
				"साला", "कमीना", "हरामी", "बेवकूफ", "गधा",
			},
			CategoryAbusive: {
				"नालायक", "निकम्मा", "बदमाश", "लुच्चा",
			},
			CategorySensational: {
				"सनसनीखेज", "धमाका", "हड़कंप", "तहलका", "बवाल",
			},
			CategoryUnverified: {
				"कथित तौर पर", "सूत्रों की मानें", "चर्चा है", "अफवाह है",
			},
			CategoryCasual: {
				"झकास", "बिंदास", "फंडा", "सेटिंग", "जुगाड़",
			},
		},
		replacements: map[string]string{
			"बेवकूफ":    "अनुचित",
			"बदमाश":     "आरोपी",
			"धमाका":     "घटना",
			"हड़कंप":    "हलचल",
			"तहलका":     "चर्चा",
			"बवाल":      "विवाद",
			"सेटिंग":    "व्यवस्था",
			"जुगाड़":    "व्यवस्था",
			"सनसनीखेज": "महत्वपूर्ण",
		},
	}
}

// Audit scans one piece of content and classifies every hit.
func (a *Auditor) Audit(contentID, contentType, text string) *Result {
	res := &Result{
		ContentID:    contentID,
		ContentType:  contentType,
		Clean:        true,
		Replacements: make(map[string]string),
	}

	if strings.TrimSpace(text) == "" {
		res.Clean = false
		res.FlaggedCategories = append(res.FlaggedCategories, CategoryEmptyContent)
		res.Severity = SeverityMedium
		return res
	}

	lower := strings.ToLower(text)
	categories := make(map[string]bool)

	for cat, words := range a.lists {
		for _, w := range words {
			if strings.Contains(lower, strings.ToLower(w)) {
				res.Clean = false
				res.FlaggedWords = append(res.FlaggedWords, w)
				categories[cat] = true
				if repl, ok := a.replacements[w]; ok {
					res.Replacements[w] = repl
				}
			}
		}
	}

	for cat := range categories {
		res.FlaggedCategories = append(res.FlaggedCategories, cat)
	}
	res.Severity = severityFor(categories)

	metrics.Global.AddAuditFlags(len(res.FlaggedWords))
	return res
}

func severityFor(categories map[string]bool) Severity {
	switch {
	case categories[CategoryProfanity] || categories[CategoryAbusive]:
		return SeverityHigh
	case categories[CategoryUnverified] || categories[CategorySensational]:
		return SeverityMedium
	case categories[CategoryCasual]:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// filteredPlaceholder marks removed words that had no professional
// replacement.
const filteredPlaceholder = "[सामग्री फ़िल्टर की गई]"

// Clean applies the audit's suggested replacements and strips flagged
// words that have none.
func (a *Auditor) Clean(text string, res *Result) string {
	cleaned := text

	for word, repl := range res.Replacements {
		cleaned = strings.ReplaceAll(cleaned, word, repl)
	}

	for _, word := range res.FlaggedWords {
		if _, ok := res.Replacements[word]; ok {
			continue
		}
		cleaned = strings.ReplaceAll(cleaned, word, filteredPlaceholder)
	}

	cleaned = strings.ReplaceAll(cleaned, filteredPlaceholder+" ", "")
	cleaned = strings.ReplaceAll(cleaned, " "+filteredPlaceholder, "")
	cleaned = strings.ReplaceAll(cleaned, filteredPlaceholder, "")

	return strings.Join(strings.Fields(cleaned), " ")
}

// SimulateTranscript approximates what a TTS voice would actually say:
// markup and emoji vanish, the words remain. Used to audit the audio
// variant without running the audio pipeline.
func SimulateTranscript(bulletin string) string {
	var b strings.Builder
	for _, r := range bulletin {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '।' || r == ',' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ComprehensiveAudit audits the bulletin and its simulated transcript
// and reports the worse of the two severities.
func (a *Auditor) ComprehensiveAudit(contentID, bulletinText string) *Report {
	summary := a.Audit(contentID, "summary", bulletinText)
	transcript := a.Audit(contentID, "transcript", SimulateTranscript(bulletinText))

	overall := summary.Severity
	if transcript.Severity > overall {
		overall = transcript.Severity
	}

	return &Report{
		Summary:         summary,
		Transcript:      transcript,
		OverallSeverity: overall,
	}
}

// Alert renders a human-readable warning for the monitoring channel.
func (r *Report) Alert(contentID string) string {
	if r.OverallSeverity == SeverityNone {
		return ""
	}
	return fmt.Sprintf("🔍 content audit alert: id=%s severity=%s categories=%s",
		contentID, r.OverallSeverity,
		strings.Join(append(r.Summary.FlaggedCategories, r.Transcript.FlaggedCategories...), ","))
}
