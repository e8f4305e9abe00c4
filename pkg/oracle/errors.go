package oracle

import "errors"

var (
	// ErrStoreUnavailable wraps answer store lookup and write failures.
	ErrStoreUnavailable = errors.New("answer store unavailable")
	// ErrGenerationFailed wraps generator failures and undecodable output.
	ErrGenerationFailed = errors.New("answer generation failed")
)
