package sentiment

import "ReviewScanner/internal/domain"

// Count folds scored reviews into per-label totals. Total function: every
// label key is present even for an empty input, and the counts always sum to
// len(reviews).
func Count(reviews []domain.Review) domain.SentimentCounts {
	counts := domain.NewSentimentCounts()
	for _, review := range reviews {
		counts[review.SentimentLabel]++
	}
	return counts
}
