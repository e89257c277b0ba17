package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/sentiment"
)

type fakeMetadata struct {
	meta domain.ProductMetadata
	err  error
}

func (f *fakeMetadata) FetchMetadata(context.Context, string) (domain.ProductMetadata, error) {
	return f.meta, f.err
}

type fakeReviews struct {
	raw []domain.RawReview
	err error
}

func (f *fakeReviews) FetchReviews(context.Context, string) ([]domain.RawReview, error) {
	return f.raw, f.err
}

// fakeAppender fails at a configurable row index and records what got written.
type fakeAppender struct {
	failAt int // 0-based row index, -1 to never fail
	rows   [][]any
}

func (f *fakeAppender) AppendRow(_ context.Context, row []any) error {
	if f.failAt >= 0 && len(f.rows) == f.failAt {
		return errors.New("quota exceeded")
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAppender) SheetURL() string {
	return "https://docs.google.com/spreadsheets/d/test-sheet/edit"
}

func okResolve(string) (string, error) { return "123456789", nil }

func rawReviews(n int) []domain.RawReview {
	raw := make([]domain.RawReview, 0, n)
	for i := 0; i < n; i++ {
		raw = append(raw, domain.RawReview{Text: fmt.Sprintf("amazing product %d", i), Rating: 5})
	}
	return raw
}

func newTestPipeline(meta *fakeMetadata, reviews *fakeReviews, sink *fakeAppender) *Pipeline {
	deps := PipelineDeps{
		Resolve:  okResolve,
		Metadata: meta,
		Reviews:  reviews,
		Scorer:   sentiment.NewScorer(),
	}
	if sink != nil {
		deps.Sink = sink
	}
	return NewPipeline(deps)
}

func TestRunHappyPath(t *testing.T) {
	t.Parallel()

	sink := &fakeAppender{failAt: -1}
	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "Brite 500g"}},
		&fakeReviews{raw: []domain.RawReview{
			{Text: "This product is amazing and works perfectly", Rating: 5},
			{Text: "Terrible quality, broke in one day", Rating: 1},
			{Text: "arrived on a tuesday", Rating: 3},
		}},
		sink,
	)

	result, err := pipeline.Run(context.Background(), "https://www.daraz.pk/products/item-i123456789.html")
	require.NoError(t, err)

	require.Len(t, result.Reviews, 3)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/test-sheet/edit", result.SheetURL)

	assert.Equal(t, "Brite 500g", result.Reviews[0].ProductName)
	assert.Equal(t, domain.SentimentPositive, result.Reviews[0].SentimentLabel)
	assert.Equal(t, domain.SentimentNegative, result.Reviews[1].SentimentLabel)
	assert.Equal(t, domain.SentimentNeutral, result.Reviews[2].SentimentLabel)

	assert.Equal(t, 1, result.Counts[domain.SentimentPositive])
	assert.Equal(t, 1, result.Counts[domain.SentimentNegative])
	assert.Equal(t, 1, result.Counts[domain.SentimentNeutral])

	// Persisted rows mirror the returned reviews, in order.
	require.Len(t, sink.rows, 3)
	assert.Equal(t, "This product is amazing and works perfectly", sink.rows[0][1])
	assert.Equal(t, string(domain.SentimentPositive), sink.rows[0][3])
}

func TestRunLabelConsistentWithScore(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "X"}},
		&fakeReviews{raw: rawReviews(4)},
		nil,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.NoError(t, err)

	for _, review := range result.Reviews {
		assert.Equal(t, sentiment.Label(review.SentimentScore), review.SentimentLabel)
	}
}

func TestRunInvalidReferenceFatal(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Resolve: func(string) (string, error) {
			return "", fmt.Errorf("bad url: %w", domain.ErrInvalidReference)
		},
		Reviews: &fakeReviews{},
		Scorer:  sentiment.NewScorer(),
	})

	result, err := pipeline.Run(context.Background(), "https://www.daraz.pk/products/nothing.html")
	require.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Empty(t, result.Reviews)
}

func TestRunSourceUnavailableFatal(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "X"}},
		&fakeReviews{err: fmt.Errorf("first page: %w", domain.ErrSourceUnavailable)},
		nil,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Empty(t, result.Reviews)
}

func TestRunMetadataFailureDegrades(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(
		&fakeMetadata{
			meta: domain.ProductMetadata{Name: domain.UnknownProductName},
			err:  fmt.Errorf("render: %w", domain.ErrFetchUnavailable),
		},
		&fakeReviews{raw: rawReviews(2)},
		nil,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.NoError(t, err, "metadata failure must not abort review retrieval")

	require.Len(t, result.Reviews, 2)
	assert.Equal(t, domain.UnknownProductName, result.Reviews[0].ProductName)
	assert.NotEmpty(t, result.Warnings)
}

func TestRunPartialSourceKeepsGathered(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "X"}},
		&fakeReviews{
			raw: rawReviews(5),
			err: &domain.PartialSourceError{Page: 2, Err: errors.New("timeout")},
		},
		nil,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.NoError(t, err)

	assert.Len(t, result.Reviews, 5)
	assert.NotEmpty(t, result.Warnings)
}

func TestRunPartialPersistenceKeepsData(t *testing.T) {
	t.Parallel()

	const total = 20
	sink := &fakeAppender{failAt: 5}
	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "X"}},
		&fakeReviews{raw: rawReviews(total)},
		sink,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.NoError(t, err, "persistence failure is non-fatal")

	assert.Len(t, result.Reviews, total, "caller still gets every review")
	assert.Len(t, sink.rows, 5, "rows before the failure stay written")
	assert.NotEmpty(t, result.Warnings)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/test-sheet/edit", result.SheetURL)
}

func TestRunNoReviewsWarns(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(
		&fakeMetadata{meta: domain.ProductMetadata{Name: "X"}},
		&fakeReviews{raw: nil},
		nil,
	)

	result, err := pipeline.Run(context.Background(), "https://x/p-i1.html")
	require.NoError(t, err)

	assert.Empty(t, result.Reviews)
	assert.Len(t, result.Counts, 3)
	assert.NotEmpty(t, result.Warnings)
}
