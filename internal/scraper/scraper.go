// Package scraper collects raw articles from Hindi regional news
// sources, over RSS where a feed exists and by page scraping otherwise.
// It is a collaborator of the verification core: its only contract is
// to hand over a pool of raw Articles.
package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"cgnews/internal/metrics"
	"cgnews/internal/news"
)

// Source is one configured news outlet.
type Source struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // "rss" or "web"
	URL  string `yaml:"url"`
	RSS  string `yaml:"rss"`
}

type sourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sources config: %w", err)
	}
	defer f.Close()

	var cfg sourcesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode sources config: %w", err)
	}
	return cfg.Sources, nil
}

// maxPerSource caps how many recent entries one outlet contributes.
const maxPerSource = 10

// Scraper fetches all configured sources with bounded concurrency and
// a shared politeness rate limit.
type Scraper struct {
	client      *http.Client
	parser      *gofeed.Parser
	limiter     *rate.Limiter
	concurrency int
	loc         *time.Location
	now         func() time.Time
}

func New(timeout time.Duration, concurrency int) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	return &Scraper{
		client:      &http.Client{Timeout: timeout},
		parser:      gofeed.NewParser(),
		limiter:     rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		concurrency: concurrency,
		loc:         loc,
		now:         time.Now,
	}
}

// ScrapeAll fetches every source and returns the combined pool. Sources
// run in parallel but results keep the configured source order, so the
// downstream order-dependent clustering sees a stable input for the
// same scrape content. A failing source is logged and skipped.
func (s *Scraper) ScrapeAll(ctx context.Context, sources []Source) []news.Article {
	results := make([][]news.Article, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := s.scrapeSource(ctx, src)
			if err != nil {
				log.Printf("error scraping %s: %v", src.Name, err)
				return
			}
			log.Printf("loaded %d articles from %s", len(articles), src.Name)
			results[i] = articles
		}(i, src)
	}
	wg.Wait()

	var pool []news.Article
	for _, articles := range results {
		pool = append(pool, articles...)
	}

	metrics.Global.IncrementArticlesScraped(len(pool))
	log.Printf("scraped %d articles from %d sources", len(pool), len(sources))
	return pool
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source) ([]news.Article, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	switch src.Type {
	case "rss":
		return s.scrapeRSS(ctx, src)
	case "web":
		return s.scrapeWeb(ctx, src)
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// scrapeRSS pulls the most recent feed entries, keeping only today's
// items (IST calendar day) when the feed carries publish dates.
func (s *Scraper) scrapeRSS(ctx context.Context, src Source) ([]news.Article, error) {
	feed, err := s.parser.ParseURLWithContext(src.RSS, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	today := s.now().In(s.loc).Format("2006-01-02")

	var articles []news.Article
	for _, item := range feed.Items {
		if len(articles) >= maxPerSource {
			break
		}

		timestamp := s.now().In(s.loc).Format(time.RFC3339)
		if item.PublishedParsed != nil {
			published := item.PublishedParsed.In(s.loc)
			if published.Format("2006-01-02") != today {
				continue
			}
			timestamp = published.Format(time.RFC3339)
		}

		articles = append(articles, news.Article{
			Source:    src.Name,
			Title:     strings.TrimSpace(item.Title),
			Body:      cleanText(item.Description),
			URL:       item.Link,
			Timestamp: timestamp,
		})
	}
	return articles, nil
}

// Generic selectors that cover most of the configured portals; tune
// per-source when a portal redesign breaks extraction.
var articleSelectors = []string{
	"article",
	".news-item",
	".story",
	".post",
	".news-card",
	".article-item",
}

// scrapeWeb extracts headline cards from a portal landing page.
func (s *Scraper) scrapeWeb(ctx context.Context, src Source) ([]news.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.7")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	timestamp := s.now().In(s.loc).Format(time.RFC3339)

	var articles []news.Article
	for _, selector := range articleSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if len(articles) >= maxPerSource {
				return false
			}

			title := strings.TrimSpace(sel.Find("h1, h2, h3, .title, .headline").First().Text())
			if title == "" || len([]rune(title)) < 10 {
				return true
			}

			link, _ := sel.Find("a").First().Attr("href")
			if strings.HasPrefix(link, "/") {
				link = strings.TrimSuffix(src.URL, "/") + link
			}

			body := cleanText(sel.Find("p, .summary, .excerpt").Text())

			articles = append(articles, news.Article{
				Source:    src.Name,
				Title:     title,
				Body:      body,
				URL:       link,
				Timestamp: timestamp,
			})
			return true
		})
		if len(articles) > 0 {
			break
		}
	}
	return articles, nil
}

func cleanText(text string) string {
	// Drop leftover tags, collapse whitespace
	if strings.Contains(text, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
