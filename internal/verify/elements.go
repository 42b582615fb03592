package verify

import (
	"regexp"

	"cgnews/internal/news"
)

// KeyElements are coarse structural signals pulled from an article by
// pattern matching: actors, event keywords, place names and temporal
// expressions. Empty sets mean "no signal", not zero similarity.
type KeyElements struct {
	Who   map[string]bool
	What  map[string]bool
	Where map[string]bool
	When  map[string]bool
}

// Pattern batteries per field. Go's \w is ASCII-only, so Devanagari
// word stems are matched with the script class explicitly.
var (
	wherePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(रायपुर|बिलासपुर|दुर्ग|भिलाई|कोरबा|राजनांदगांव|जगदलपुर|अंबिकापुर)`),
		regexp.MustCompile(`(छत्तीसगढ़|बस्तर|सरगुजा|दंतेवाड़ा|नारायणपुर|बीजापुर|सुकमा)`),
		regexp.MustCompile(`([\p{Devanagari}]+पुर|[\p{Devanagari}]+गढ़|[\p{Devanagari}]+नगर|[\p{Devanagari}]+बाद)`),
	}

	whoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(मुख्यमंत्री|मंत्री|विधायक|सांसद|कलेक्टर|एसपी)`),
		regexp.MustCompile(`(पुलिस|सीबीआई|ईडी|आईटी|प्रशासन)`),
		regexp.MustCompile(`([A-Za-z]+(?:\s[A-Za-z]+)*\s(?:सिंह|शर्मा|वर्मा|गुप्ता|अग्रवाल))`),
	}

	whatPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(गिरफ्तार|हत्या|चोरी|ठगी|दुर्घटना|हादसा)`),
		regexp.MustCompile(`(योजना|परियोजना|निर्माण|उद्घाटन|शुरुआत)`),
		regexp.MustCompile(`(बैठक|सम्मेलन|कार्यक्रम|समारोह)`),
	}

	whenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}\s(?:जनवरी|फरवरी|मार्च|अप्रैल|मई|जून|जुलाई|अगस्त|सितंबर|अक्टूबर|नवंबर|दिसंबर))`),
		regexp.MustCompile(`(आज|कल|परसों|बीते\s[\p{Devanagari}]+|गुजरे\s[\p{Devanagari}]+)`),
	}
)

// ExtractKeyElements runs the pattern batteries over title + body.
// Pure function of the article text; unmatched fields come back empty.
func ExtractKeyElements(a news.Article) KeyElements {
	text := a.Text()

	return KeyElements{
		Who:   matchSet(text, whoPatterns),
		What:  matchSet(text, whatPatterns),
		Where: matchSet(text, wherePatterns),
		When:  matchSet(text, whenPatterns),
	}
}

func matchSet(text string, patterns []*regexp.Regexp) map[string]bool {
	set := make(map[string]bool)
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			set[m] = true
		}
	}
	return set
}

// jaccard computes |intersection| / |union| of two non-empty sets.
func jaccard(a, b map[string]bool) float64 {
	common := 0
	for k := range a {
		if b[k] {
			common++
		}
	}
	union := len(a) + len(b) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}
