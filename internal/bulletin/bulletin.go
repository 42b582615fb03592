// Package bulletin renders verified stories into the daily Hindi
// bulletin: a formatted variant for chat delivery and a plain variant
// ready for TTS narration.
package bulletin

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"cgnews/internal/news"
	"cgnews/internal/verify"
)

// categoryEmojis map topic categories to the bulletin's visual markers.
var categoryEmojis = map[string]string{
	"crime":       "🚨",
	"politics":    "📌",
	"accident":    "🚗",
	"development": "🛣️",
	"health":      "💊",
	"weather":     "🌧️",
	"education":   "📚",
	"general":     "📰",
}

// keywordEmojis pick a more specific marker than the category when the
// story text names a concrete subject. Checked before the category map.
var keywordEmojis = []struct {
	keyword string
	emoji   string
}{
	{"हाई कोर्ट", "⚖️"},
	{"सुप्रीम कोर्ट", "⚖️"},
	{"न्यायालय", "⚖️"},
	{"फैसला", "⚖️"},
	{"नक्सल", "🪖"},
	{"आत्मसमर्पण", "🪖"},
	{"सीबीआई", "🕵️"},
	{"ईडी", "🕵️"},
	{"जांच", "🕵️"},
	{"छापेमारी", "🕵️"},
	{"रिश्वत", "🕵️"},
	{"बाढ़", "💧"},
	{"डायरिया", "💧"},
	{"फोरलेन", "🛣️"},
}

var hindiMonths = []string{
	"जनवरी", "फरवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर",
}

// Format renders the chat bulletin: dated header, one numbered line per
// story with an emoji marker and the first-sentence summary, and a
// corroboration footer.
func Format(day time.Time, stories []verify.VerifiedArticle) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌄 *छत्तीसगढ़ समाचार* | %s\n", hindiDate(day)))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	for _, s := range stories {
		summary := s.Summary
		if summary == "" {
			summary = news.FirstSentence(s.Body)
		}
		b.WriteString(fmt.Sprintf("%s *%d. %s*\n", emojiFor(s), s.ID, s.Title))
		if summary != "" && summary != s.Title {
			b.WriteString(summary + "\n")
		}
		b.WriteString(fmt.Sprintf("🔎 %d स्रोतों से पुष्टि\n\n", s.SourceCount))
	}

	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("📱 छत्तीसगढ़ न्यूज़ बुलेटिन | प्रतिदिन शाम 5 बजे")

	return b.String()
}

// TTSText renders the narration script: no emoji, no markup, danda
// terminated sentences one story per paragraph.
func TTSText(day time.Time, stories []verify.VerifiedArticle) string {
	var b strings.Builder

	b.WriteString("नमस्कार, छत्तीसगढ़ समाचार में आपका स्वागत है। ")
	b.WriteString("आज " + hindiDate(day) + " की मुख्य खबरें।\n\n")

	for _, s := range stories {
		line := s.Title
		if s.Summary != "" && s.Summary != s.Title {
			line += "। " + s.Summary
		}
		line = stripNonNarratable(line)
		if !strings.HasSuffix(line, "।") {
			line += "।"
		}
		b.WriteString(fmt.Sprintf("खबर %d। %s\n\n", s.ID, line))
	}

	b.WriteString("यह थीं आज की मुख्य खबरें। धन्यवाद।")
	return b.String()
}

func emojiFor(s verify.VerifiedArticle) string {
	text := s.Title + " " + s.Body
	for _, ke := range keywordEmojis {
		if strings.Contains(text, ke.keyword) {
			return ke.emoji
		}
	}
	if e, ok := categoryEmojis[s.Category]; ok {
		return e
	}
	return categoryEmojis["general"]
}

func hindiDate(day time.Time) string {
	return fmt.Sprintf("%d %s %d", day.Day(), hindiMonths[day.Month()-1], day.Year())
}

// stripNonNarratable removes symbols a TTS voice would stumble over,
// keeping letters, digits, spaces and sentence punctuation.
func stripNonNarratable(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '।' || r == ',' || r == '.' || r == '?' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
