package store

import "context"

// Store is the answer store capability: a durable question -> answer mapping.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the stored answer for a question, reporting whether one exists.
	Get(ctx context.Context, question string) ([]byte, bool, error)
	// Set writes the answer for a question, replacing any previous value.
	Set(ctx context.Context, question string, answer []byte) error
}
