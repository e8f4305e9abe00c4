package models

import "time"

// AskEntry records a single resolved question.
type AskEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CacheHit  bool      `json:"cache_hit"`
	LatencyMs int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryConfig controls the ask log.
type HistoryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DBPath        string `yaml:"db_path"`
	RetentionDays int    `yaml:"retention_days"`
}

// HistoryQueryOpts specifies filters for querying the ask log.
type HistoryQueryOpts struct {
	Since    time.Time
	OnlyHits bool
	Limit    int
}
