package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
	"ReviewScanner/internal/sentiment"
)

// ResolveFunc extracts the canonical product id from a product URL.
type ResolveFunc func(productURL string) (string, error)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Resolve  ResolveFunc
	Metadata ports.MetadataSource
	Reviews  ports.ReviewSource
	Scorer   ports.SentimentScorer
	Sink     ports.RowAppender
	Logger   *slog.Logger
}

// Pipeline implements the acquisition-and-enrichment workflow for one
// product: resolve id, fetch metadata and reviews, score, aggregate,
// persist, assemble. Only a bad URL or a dead review source is fatal;
// everything else degrades into warnings on the result.
type Pipeline struct {
	resolve  ResolveFunc
	metadata ports.MetadataSource
	reviews  ports.ReviewSource
	scorer   ports.SentimentScorer
	sink     ports.RowAppender
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		resolve:  deps.Resolve,
		metadata: deps.Metadata,
		reviews:  deps.Reviews,
		scorer:   deps.Scorer,
		sink:     deps.Sink,
		logger:   deps.Logger,
	}
}

// Run executes one invocation. Invocations share no state; concurrent runs
// only meet at the spreadsheet, where appends interleave without coordination.
func (p *Pipeline) Run(ctx context.Context, productURL string) (domain.PipelineResult, error) {
	itemID, err := p.resolve(productURL)
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("resolve product reference: %w", err)
	}
	p.debug("resolved product reference", "item_id", itemID)

	var warnings []string

	// Metadata and reviews are independent reads; run them concurrently.
	// Only the review fetch can fail the group.
	var (
		productName = domain.UnknownProductName
		metaWarning string
		raw         []domain.RawReview
		partial     *domain.PartialSourceError
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if p.metadata == nil {
			return nil
		}
		meta, mErr := p.metadata.FetchMetadata(groupCtx, productURL)
		if mErr != nil {
			p.warn("product metadata unavailable", "error", mErr)
			metaWarning = "product page unreachable, product name unavailable"
			return nil
		}
		if meta.Name != "" {
			productName = meta.Name
		}
		return nil
	})

	group.Go(func() error {
		fetched, rErr := p.reviews.FetchReviews(groupCtx, itemID)
		if rErr != nil {
			var partialErr *domain.PartialSourceError
			if errors.As(rErr, &partialErr) {
				raw = fetched
				partial = partialErr
				return nil
			}
			return fmt.Errorf("fetch reviews for item %s: %w", itemID, rErr)
		}
		raw = fetched
		return nil
	})

	if err := group.Wait(); err != nil {
		return domain.PipelineResult{}, err
	}

	if metaWarning != "" {
		warnings = append(warnings, metaWarning)
	}
	if partial != nil {
		warnings = append(warnings, "fewer reviews than expected, source may have limited results")
	}
	if len(raw) == 0 {
		warnings = append(warnings, "no reviews found for this product")
	}

	reviews := make([]domain.Review, 0, len(raw))
	for _, r := range raw {
		score, label := p.scorer.Score(r.Text)
		reviews = append(reviews, domain.Review{
			ProductName:    productName,
			ReviewText:     r.Text,
			Rating:         r.Rating,
			SentimentLabel: label,
			SentimentScore: score,
		})
	}

	counts := sentiment.Count(reviews)

	sheetURL := ""
	if p.sink != nil {
		sheetURL = p.sink.SheetURL()
		if err := p.persist(ctx, reviews); err != nil {
			p.warn("sheet append failed", "error", err)
			warnings = append(warnings, fmt.Sprintf("saving to the sheet failed (%v), returned data is complete", err))
		}
	}

	p.debug("pipeline done", "reviews", len(reviews), "warnings", len(warnings))

	return domain.PipelineResult{
		Reviews:  reviews,
		Counts:   counts,
		SheetURL: sheetURL,
		Warnings: warnings,
	}, nil
}

// persist appends one row per review in order. No rollback: rows written
// before a failure stay written, and the failure is reported with the count.
func (p *Pipeline) persist(ctx context.Context, reviews []domain.Review) error {
	for i, review := range reviews {
		row := []any{
			review.ProductName,
			review.ReviewText,
			review.Rating,
			string(review.SentimentLabel),
			review.SentimentScore,
		}
		if err := p.sink.AppendRow(ctx, row); err != nil {
			return &domain.PersistenceError{Written: i, Total: len(reviews), Err: err}
		}
	}
	return nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
