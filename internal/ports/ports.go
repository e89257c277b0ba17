package ports

import (
	"context"

	"ReviewScanner/internal/domain"
)

// PageFetcher renders a URL in a real browser and returns the resulting HTML.
// Implementations time-box navigation; failures map to domain.ErrFetchUnavailable.
type PageFetcher interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// MetadataSource loads best-effort product metadata for a product URL.
type MetadataSource interface {
	FetchMetadata(ctx context.Context, productURL string) (domain.ProductMetadata, error)
}

// ReviewSource pulls the paginated review set for a product id. It may return
// a non-empty result together with a *domain.PartialSourceError when later
// pages failed after retry.
type ReviewSource interface {
	FetchReviews(ctx context.Context, itemID string) ([]domain.RawReview, error)
}

// SentimentScorer maps review text to a polarity score in [-1,1] and a label
// consistent with the thresholding policy.
type SentimentScorer interface {
	Score(text string) (float64, domain.SentimentLabel)
}

// RowAppender durably appends one spreadsheet row. Appends are at-least-once;
// a succeeded append must not be retried.
type RowAppender interface {
	AppendRow(ctx context.Context, row []any) error
	SheetURL() string
}
