package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resolve product reference: %w", ErrInvalidReference)
	if !errors.Is(wrapped, ErrInvalidReference) {
		t.Fatal("wrapped ErrInvalidReference not matched")
	}

	wrapped = fmt.Errorf("first page: %w: %w", ErrSourceUnavailable, errors.New("timeout"))
	if !errors.Is(wrapped, ErrSourceUnavailable) {
		t.Fatal("wrapped ErrSourceUnavailable not matched")
	}
}

func TestPartialSourceErrorUnwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := fmt.Errorf("fetch: %w", &PartialSourceError{Page: 3, Err: cause})

	var partial *PartialSourceError
	if !errors.As(err, &partial) {
		t.Fatal("PartialSourceError not matched through wrapping")
	}
	if partial.Page != 3 {
		t.Fatalf("unexpected page: %d", partial.Page)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
}

func TestPersistenceErrorMessage(t *testing.T) {
	t.Parallel()

	err := &PersistenceError{Written: 5, Total: 20, Err: errors.New("quota exceeded")}

	if msg := err.Error(); !strings.HasPrefix(msg, "sheet append failed after 5 of 20 rows") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestNewSentimentCountsHasAllLabels(t *testing.T) {
	t.Parallel()

	counts := NewSentimentCounts()
	if len(counts) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(counts))
	}
	for _, label := range Labels() {
		if _, ok := counts[label]; !ok {
			t.Fatalf("missing label %s", label)
		}
	}
}
