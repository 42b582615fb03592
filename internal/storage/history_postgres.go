package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgresHistory keeps sent-story history in PostgreSQL, for
// deployments where the bulletin runs on more than one host.
type PostgresHistory struct {
	db       *sql.DB
	ttlHours int
}

func NewPostgresHistory(connectionString string, ttlHours int) (*PostgresHistory, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &PostgresHistory{
		db:       db,
		ttlHours: ttlHours,
	}

	if err := h.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Println("✅ PostgreSQL history connected")
	return h, nil
}

func (h *PostgresHistory) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sent_stories (
		id SERIAL PRIMARY KEY,
		hash VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		category VARCHAR(50),
		source VARCHAR(100),
		sent_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sent_stories_hash ON sent_stories(hash);
	CREATE INDEX IF NOT EXISTS idx_sent_stories_sent_at ON sent_stories(sent_at);
	`

	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (h *PostgresHistory) GenerateStoryHash(title, source string) string {
	return storyHash(title, source)
}

// WasSent checks the history within the TTL window. Lookup errors are
// logged and treated as "not sent" so a database hiccup cannot block
// the bulletin.
func (h *PostgresHistory) WasSent(hash string) bool {
	cutoff := time.Now().Add(-time.Duration(h.ttlHours) * time.Hour)

	var count int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM sent_stories WHERE hash = $1 AND sent_at > $2`, hash, cutoff).Scan(&count)
	if err != nil {
		log.Printf("⚠️ error checking story history: %v", err)
		return false
	}
	return count > 0
}

func (h *PostgresHistory) MarkSent(hash, title, url, category, source string) error {
	query := `
		INSERT INTO sent_stories (hash, title, url, category, source, sent_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (hash) DO UPDATE SET sent_at = NOW()
	`
	if _, err := h.db.Exec(query, hash, title, url, category, source); err != nil {
		return fmt.Errorf("failed to mark story as sent: %w", err)
	}
	return nil
}

// Cleanup removes entries older than the TTL window.
func (h *PostgresHistory) Cleanup() error {
	cutoff := time.Now().Add(-time.Duration(h.ttlHours) * time.Hour)

	result, err := h.db.Exec(`DELETE FROM sent_stories WHERE sent_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup history: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		log.Printf("🗑️ cleaned up %d old history records", rows)
	}
	return nil
}

func (h *PostgresHistory) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}
