// Package app wires the daily pipeline: scrape (or reload the day's raw
// pool), verify, format, audit, deliver, record history.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"cgnews/internal/audit"
	"cgnews/internal/bulletin"
	"cgnews/internal/cache"
	"cgnews/internal/category"
	"cgnews/internal/config"
	"cgnews/internal/embed"
	"cgnews/internal/logger"
	"cgnews/internal/metrics"
	"cgnews/internal/news"
	"cgnews/internal/ratelimit"
	"cgnews/internal/scraper"
	"cgnews/internal/storage"
	"cgnews/internal/telegram"
	"cgnews/internal/verify"
)

type App struct {
	cfg *config.Config

	embedder    embed.Embedder // nil when no model is configured
	embedCache  *cache.Cache
	budget      *ratelimit.EmbedBudget
	categorizer *category.Categorizer
	scraper     *scraper.Scraper
	store       *storage.VerifiedStore
	history     storage.History
	auditor     *audit.Auditor
	loc         *time.Location
}

// New builds the pipeline from config. The embedding backend is chosen
// once here: model-backed when a key is configured and the client comes
// up, hash fallback otherwise.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}

	a := &App{
		cfg:        cfg,
		embedCache: cache.New(),
		budget:     ratelimit.NewEmbedBudget(cfg.MaxEmbedRequests),
		scraper:    scraper.New(cfg.RequestTimeout, cfg.ScrapeConcurrency),
		store:      storage.NewVerifiedStore(cfg.OutputDir),
		auditor:    audit.NewAuditor(),
		loc:        loc,
	}

	if cfg.GeminiAPIKey != "" {
		gem, err := embed.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbedTimeout)
		if err != nil {
			logger.Warn("model embedder unavailable, using hash fallback", "error", err)
		} else {
			a.embedder = embed.NewCachedEmbedder(gem, a.embedCache, a.budget, 24*time.Hour)
			logger.Info("embedding backend selected", "name", gem.Name())
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, similarity runs on hash fallback only")
	}

	table := category.DefaultTable()
	if cfg.CategoriesConfigPath != "" {
		t, err := category.LoadTable(cfg.CategoriesConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load category table: %w", err)
		}
		table = t
	}
	a.categorizer = category.NewCategorizer(table)

	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresHistory(cfg.DatabaseURL, cfg.HistoryTTLHours)
		if err != nil {
			return nil, fmt.Errorf("failed to open story history: %w", err)
		}
		if err := pg.Cleanup(); err != nil {
			logger.Warn("history cleanup failed", "error", err)
		}
		a.history = pg
	} else {
		fh := storage.NewFileHistory(cfg.HistoryFilePath, cfg.HistoryTTLHours)
		if err := fh.Load(); err != nil {
			logger.Warn("failed to load story history, starting empty", "error", err)
		}
		a.history = fh
	}

	return a, nil
}

// Run executes one complete batch for today.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	day := time.Now().In(a.loc)

	pool, err := a.collectPool(ctx, day)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	scorer := verify.NewScorer(a.embedder)
	verifier := verify.NewVerifier(scorer, a.categorizer, a.store)

	stories, err := verifier.Verify(ctx, pool)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	if len(stories) == 0 {
		logger.Info("no verified stories today, skipping bulletin")
		metrics.Global.SetLastRun()
		return nil
	}

	fresh := a.dropAlreadySent(stories)
	if len(fresh) == 0 {
		logger.Info("all verified stories already sent, skipping bulletin")
		metrics.Global.SetLastRun()
		return nil
	}

	text := bulletin.Format(day, fresh)

	report := a.auditor.ComprehensiveAudit(day.Format("2006-01-02"), text)
	if report.OverallSeverity != audit.SeverityNone {
		logger.Warn("bulletin flagged by content audit",
			"severity", report.OverallSeverity.String(),
			"alert", report.Alert(day.Format("2006-01-02")))
		text = a.auditor.Clean(text, report.Summary)
	}

	if a.cfg.DryRun {
		logger.Info("dry run, bulletin not sent", "stories", len(fresh), "chars", len(text))
		fmt.Fprintln(os.Stdout, text)
		metrics.Global.SetLastRun()
		return nil
	}

	if err := telegram.SendBulletin(ctx, a.cfg.TelegramToken, a.cfg.TelegramChatID, text); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("failed to deliver bulletin: %w", err)
	}
	metrics.Global.IncrementBulletinsSent()

	for _, s := range fresh {
		hash := a.history.GenerateStoryHash(s.Title, s.Source)
		if err := a.history.MarkSent(hash, s.Title, s.URL, s.Category, s.Source); err != nil {
			logger.Warn("failed to record story history", "title", s.Title, "error", err)
		}
	}

	logger.Info("bulletin delivered", "stories", len(fresh))
	metrics.Global.SetLastRun()
	return nil
}

// Start runs on the configured cron schedule (IST) until ctx ends.
func (a *App) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(a.loc))

	_, err := c.AddFunc(a.cfg.Schedule, func() {
		if err := a.Run(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", a.cfg.Schedule, err)
	}

	logger.Info("scheduler started", "schedule", a.cfg.Schedule)
	c.Start()
	<-ctx.Done()

	stop := c.Stop()
	<-stop.Done()
	return nil
}

// Close releases history backends.
func (a *App) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			logger.Warn("failed to close story history", "error", err)
		}
	}
}

// collectPool loads the day's raw pool from disk when a scrape already
// ran today, and scrapes otherwise.
func (a *App) collectPool(ctx context.Context, day time.Time) ([]news.Article, error) {
	rawPath := news.RawFileName(a.cfg.RawDir, day)

	if _, err := os.Stat(rawPath); err == nil {
		pool, err := news.LoadRaw(rawPath)
		if err == nil {
			logger.Info("loaded raw pool from disk", "path", rawPath, "articles", len(pool))
			return pool, nil
		}
		logger.Warn("raw pool unreadable, rescraping", "path", rawPath, "error", err)
	}

	sources, err := scraper.LoadSources(a.cfg.SourcesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	pool := a.scraper.ScrapeAll(ctx, sources)

	if err := os.MkdirAll(a.cfg.RawDir, 0755); err == nil {
		if err := news.SaveRaw(rawPath, pool); err != nil {
			logger.Warn("failed to save raw pool", "error", err)
		}
	}
	return pool, nil
}

// dropAlreadySent filters out stories delivered in an earlier bulletin
// within the history TTL.
func (a *App) dropAlreadySent(stories []verify.VerifiedArticle) []verify.VerifiedArticle {
	fresh := make([]verify.VerifiedArticle, 0, len(stories))
	for _, s := range stories {
		hash := a.history.GenerateStoryHash(s.Title, s.Source)
		if a.history.WasSent(hash) {
			logger.Debug("story already sent, skipping", "title", s.Title)
			continue
		}
		fresh = append(fresh, s)
	}
	return fresh
}
