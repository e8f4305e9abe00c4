package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eightball-ai/eightball/pkg/models"
)

// Store is an answer store backed by SQLite. Entries are keyed by the exact
// question text and are never expired.
type Store struct {
	db     *sql.DB
	hits   atomic.Int64
	misses atomic.Int64
}

const createAnswersTable = `
CREATE TABLE IF NOT EXISTS answers (
	question TEXT NOT NULL PRIMARY KEY,
	answer TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// New creates a Store with the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open answer db: %w", err)
	}

	if _, err := db.Exec(createAnswersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate answer db: %w", err)
	}

	return &Store{db: db}, nil
}

// Get retrieves a stored answer. The second return reports whether an entry
// exists for the question.
func (s *Store) Get(ctx context.Context, question string) ([]byte, bool, error) {
	var answer string
	err := s.db.QueryRowContext(ctx,
		`SELECT answer FROM answers WHERE question = ?`, question,
	).Scan(&answer)
	if errors.Is(err, sql.ErrNoRows) {
		s.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("answer get: %w", err)
	}

	s.hits.Add(1)
	return []byte(answer), true, nil
}

// Set stores an answer, replacing any previous entry for the question.
func (s *Store) Set(ctx context.Context, question string, answer []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (question, answer, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(question) DO UPDATE SET answer = excluded.answer, updated_at = excluded.updated_at`,
		question, string(answer), time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("answer set: %w", err)
	}
	return nil
}

// Stats returns answer store metrics.
func (s *Store) Stats(ctx context.Context) (models.StoreStats, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers`).Scan(&count)
	if err != nil {
		return models.StoreStats{}, fmt.Errorf("answer stats: %w", err)
	}
	return models.StoreStats{
		Entries: count,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}, nil
}

// List returns stored entries, most recently updated first.
func (s *Store) List(ctx context.Context, limit int) ([]models.AnswerRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT question, answer, updated_at FROM answers ORDER BY updated_at DESC, question LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("answer list: %w", err)
	}
	defer rows.Close()

	var records []models.AnswerRecord
	for rows.Next() {
		var r models.AnswerRecord
		if err := rows.Scan(&r.Question, &r.Answer, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan answer row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Clear removes stored entries. If onlyAnswer is non-empty, only entries
// holding exactly that answer text are removed.
func (s *Store) Clear(ctx context.Context, onlyAnswer string) (int64, error) {
	var res sql.Result
	var err error
	if onlyAnswer != "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM answers WHERE answer = ?`, onlyAnswer)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM answers`)
	}
	if err != nil {
		return 0, fmt.Errorf("answer clear: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
