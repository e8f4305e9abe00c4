package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/eightball-ai/eightball/pkg/models"
)

func tempCfg(t *testing.T) models.HistoryConfig {
	t.Helper()
	return models.HistoryConfig{
		Enabled:       true,
		DBPath:        filepath.Join(t.TempDir(), "history_test.db"),
		RetentionDays: 90,
	}
}

func mustNew(t *testing.T, cfg models.HistoryConfig) *Logger {
	t.Helper()
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLogAndQuery(t *testing.T) {
	l := mustNew(t, tempCfg(t))
	ctx := context.Background()

	entries := []models.AskEntry{
		{Question: "Will it rain?", Answer: "Without a doubt.", CacheHit: false, LatencyMs: 420, CreatedAt: time.Now().Add(-time.Minute)},
		{Question: "Will it rain?", Answer: "Without a doubt.", CacheHit: true, LatencyMs: 3, CreatedAt: time.Now()},
	}
	for _, e := range entries {
		if err := l.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := l.Query(ctx, models.HistoryQueryOpts{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !got[0].CacheHit {
		t.Error("newest entry should be the cache hit")
	}

	hits, err := l.Query(ctx, models.HistoryQueryOpts{OnlyHits: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit entry, got %d", len(hits))
	}
}

func TestQuerySince(t *testing.T) {
	l := mustNew(t, tempCfg(t))
	ctx := context.Background()

	_ = l.Log(ctx, models.AskEntry{Question: "old?", Answer: "Yes.", CreatedAt: time.Now().Add(-48 * time.Hour)})
	_ = l.Log(ctx, models.AskEntry{Question: "new?", Answer: "No.", CreatedAt: time.Now()})

	got, err := l.Query(ctx, models.HistoryQueryOpts{Since: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Question != "new?" {
		t.Errorf("expected only the recent entry, got %+v", got)
	}
}

func TestCleanup(t *testing.T) {
	cfg := tempCfg(t)
	cfg.RetentionDays = 7
	l := mustNew(t, cfg)
	ctx := context.Background()

	_ = l.Log(ctx, models.AskEntry{Question: "old?", Answer: "Yes.", CreatedAt: time.Now().AddDate(0, 0, -30)})
	_ = l.Log(ctx, models.AskEntry{Question: "new?", Answer: "No.", CreatedAt: time.Now()})

	n, err := l.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry cleaned up, got %d", n)
	}

	got, _ := l.Query(ctx, models.HistoryQueryOpts{})
	if len(got) != 1 {
		t.Errorf("expected 1 remaining entry, got %d", len(got))
	}
}
