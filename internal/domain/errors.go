package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal and degraded pipeline outcomes. Adapters wrap
// these with fmt.Errorf("...: %w", ...) so callers can match with errors.Is.
var (
	// ErrInvalidReference means no product id could be extracted from the
	// supplied URL. Client error, fatal.
	ErrInvalidReference = errors.New("cannot parse product URL")

	// ErrFetchUnavailable means the page-fetch capability itself failed.
	// Aborts metadata enrichment only, never review retrieval.
	ErrFetchUnavailable = errors.New("product page fetch unavailable")

	// ErrSourceUnavailable means the review source failed on the very first
	// page even after retry. Fatal: zero reviews with no explanation.
	ErrSourceUnavailable = errors.New("review source unavailable")
)

// PartialSourceError reports that pagination stopped early because a later
// page kept failing after retry. The reviews gathered before the failure are
// still returned; this error travels alongside them as a warning.
type PartialSourceError struct {
	Page int
	Err  error
}

func (e *PartialSourceError) Error() string {
	return fmt.Sprintf("review page %d failed after retry, result is partial: %v", e.Page, e.Err)
}

func (e *PartialSourceError) Unwrap() error { return e.Err }

// PersistenceError reports a full or partial sheet append failure. Rows
// already written stay written; Written counts them.
type PersistenceError struct {
	Written int
	Total   int
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("sheet append failed after %d of %d rows: %v", e.Written, e.Total, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
