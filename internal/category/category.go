// Package category assigns a topic category and importance score to an
// article by keyword counting. The keyword table is injected so it can
// be tuned per locale without code changes.
package category

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one category: its keyword list and fixed importance weight.
// Rule order in a Table is the tie-break priority.
type Rule struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Importance float64  `yaml:"importance"`
}

// Table is an ordered set of rules, highest priority first, with
// "general" as the mandatory last entry.
type Table struct {
	Rules []Rule `yaml:"categories"`
}

// General is the fallback category for articles with no keyword hits.
const General = "general"

// DefaultTable is the built-in Chhattisgarh Hindi table. Priority order
// matches the importance weights: crime > accident > politics >
// development > health > weather > education > general.
func DefaultTable() *Table {
	return &Table{Rules: []Rule{
		{Name: "crime", Importance: 3.0, Keywords: []string{
			"अपराध", "गिरफ्तार", "हत्या", "चोरी", "ठगी", "फ्रॉड", "पुलिस", "सीबीआई",
		}},
		{Name: "accident", Importance: 2.8, Keywords: []string{
			"दुर्घटना", "हादसा", "मौत", "घायल", "अस्पताल", "एम्बुलेंस",
		}},
		{Name: "politics", Importance: 2.5, Keywords: []string{
			"नीति", "सरकार", "मुख्यमंत्री", "मंत्री", "विधायक", "चुनाव", "राजनीति",
		}},
		{Name: "development", Importance: 2.0, Keywords: []string{
			"विकास", "परियोजना", "योजना", "निर्माण", "सड़क", "पुल",
		}},
		{Name: "health", Importance: 1.8, Keywords: []string{
			"स्वास्थ्य", "बीमारी", "डॉक्टर", "इलाज", "वैक्सीन",
		}},
		{Name: "weather", Importance: 1.5, Keywords: []string{
			"मौसम", "बारिश", "तूफान", "बाढ़", "सूखा", "अलर्ट",
		}},
		{Name: "education", Importance: 1.3, Keywords: []string{
			"शिक्षा", "स्कूल", "कॉलेज", "परीक्षा", "छात्र", "शिक्षक",
		}},
		{Name: General, Importance: 1.0},
	}}
}

// LoadTable reads a category table from a YAML file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open category table: %w", err)
	}
	defer f.Close()

	var t Table
	if err := yaml.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode category table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("category table has no rules")
	}
	if t.Rules[len(t.Rules)-1].Name != General {
		return fmt.Errorf("category table must end with %q", General)
	}
	return nil
}

// Categorizer scores articles against one table.
type Categorizer struct {
	table *Table
}

func NewCategorizer(table *Table) *Categorizer {
	if table == nil {
		table = DefaultTable()
	}
	return &Categorizer{table: table}
}

// Categorize counts keyword hits per category in title + body
// (case-insensitive substring presence, one hit per distinct keyword)
// and returns the winner with its importance. Ties go to the rule
// listed first, so the table order is the priority order. No hits at
// all falls back to general.
func (c *Categorizer) Categorize(title, body string) (string, float64) {
	text := strings.ToLower(title + " " + body)

	best := c.table.Rules[len(c.table.Rules)-1] // general
	bestHits := 0

	for _, rule := range c.table.Rules {
		hits := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			best = rule
			bestHits = hits
		}
	}

	return best.Name, best.Importance
}
