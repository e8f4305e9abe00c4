package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eightball-ai/eightball/pkg/models"
)

// Logger writes and queries the ask log in a dedicated SQLite table.
type Logger struct {
	db   *sql.DB
	cfg  models.HistoryConfig
	done chan struct{}
	wg   sync.WaitGroup
}

// New opens the history database and creates the schema.
func New(cfg models.HistoryConfig) (*Logger, error) {
	db, err := sql.Open("sqlite", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	l := &Logger{
		db:   db,
		cfg:  cfg,
		done: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.retentionLoop()

	return l, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ask_log (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		question   TEXT NOT NULL,
		answer     TEXT NOT NULL,
		cache_hit  INTEGER NOT NULL,
		latency_ms INTEGER,
		created_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_ask_created ON ask_log(created_at)`)
	return err
}

// Log inserts an ask entry.
func (l *Logger) Log(ctx context.Context, entry models.AskEntry) error {
	if l == nil || l.db == nil {
		return nil
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO ask_log (question, answer, cache_hit, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.Question, entry.Answer, entry.CacheHit, entry.LatencyMs, entry.CreatedAt,
	)
	return err
}

// Query returns ask entries matching the given options, newest first.
func (l *Logger) Query(ctx context.Context, opts models.HistoryQueryOpts) ([]models.AskEntry, error) {
	q := `SELECT question, answer, cache_hit, latency_ms, created_at FROM ask_log WHERE 1=1`
	var args []any

	if !opts.Since.IsZero() {
		q += " AND created_at >= ?"
		args = append(args, opts.Since)
	}
	if opts.OnlyHits {
		q += " AND cache_hit = 1"
	}

	q += " ORDER BY created_at DESC, id DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []models.AskEntry
	for rows.Next() {
		var e models.AskEntry
		var latency sql.NullInt64
		if err := rows.Scan(&e.Question, &e.Answer, &e.CacheHit, &latency, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.LatencyMs = latency.Int64
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Cleanup deletes entries older than the configured retention period.
func (l *Logger) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -l.cfg.RetentionDays)
	res, err := l.db.ExecContext(ctx,
		`DELETE FROM ask_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Close stops the retention goroutine and closes the database.
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait()
	return l.db.Close()
}

func (l *Logger) retentionLoop() {
	defer l.wg.Done()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			_, _ = l.Cleanup(context.Background())
		}
	}
}
