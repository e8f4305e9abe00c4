package models

import "time"

// AnswerRecord is a persisted question/answer pair.
type AnswerRecord struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreStats reports answer store metrics.
type StoreStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
