package daraz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

const reviewListPath = "/pdp/review/getReviewList"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/105.0.0.0 Safari/537.36"

// retryDelay is the backoff before the single per-page retry.
const retryDelay = 500 * time.Millisecond

// ReviewClient pulls review pages from the undocumented Daraz listing
// endpoint. The endpoint shape is isolated here so it can change without
// touching scoring or persistence.
type ReviewClient struct {
	baseURL  string
	pageSize int
	maxPages int
	client   *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

var _ ports.ReviewSource = (*ReviewClient)(nil)

// ReviewClientOptions bound the client; zero values fall back to defaults.
type ReviewClientOptions struct {
	BaseURL        string
	PageSize       int
	MaxPages       int
	RequestsPerSec float64
	Timeout        time.Duration
}

// NewReviewClient wires an HTTP client; pageSize defaults to 20, maxPages to 5.
func NewReviewClient(opts ReviewClientOptions, log *slog.Logger) *ReviewClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://my.daraz.pk"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 5
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	return &ReviewClient{
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		client:   &http.Client{Timeout: opts.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		logger:   log,
	}
}

type reviewPage struct {
	Model struct {
		Items []reviewItem `json:"items"`
	} `json:"model"`
}

type reviewItem struct {
	ReviewContent string   `json:"reviewContent"`
	RatingStar    *float64 `json:"ratingStar"`
	Rating        *float64 `json:"rating"`
}

// FetchReviews walks review pages for the item until the upstream runs out,
// an empty or short page arrives, or the page cap is hit. Each page gets one
// retry with backoff; a first-page failure is fatal (domain.ErrSourceUnavailable),
// a later-page failure returns what was gathered plus *domain.PartialSourceError.
func (c *ReviewClient) FetchReviews(ctx context.Context, itemID string) ([]domain.RawReview, error) {
	reviews := make([]domain.RawReview, 0, c.pageSize)

	for pageNo := 1; pageNo <= c.maxPages; pageNo++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return reviews, fmt.Errorf("rate limit wait: %w", err)
		}

		items, err := c.fetchPageWithRetry(ctx, itemID, pageNo)
		if err != nil {
			if pageNo == 1 {
				return nil, fmt.Errorf("first review page for item %s: %w: %w",
					itemID, domain.ErrSourceUnavailable, err)
			}
			c.warn("review page failed after retry, returning partial result",
				"item_id", itemID, "page", pageNo, "collected", len(reviews), "error", err)
			return reviews, &domain.PartialSourceError{Page: pageNo, Err: err}
		}

		if len(items) == 0 {
			c.debug("empty review page, stopping", "item_id", itemID, "page", pageNo)
			break
		}

		for _, item := range items {
			raw, ok := normalize(item)
			if !ok {
				c.debug("dropped review with empty text", "item_id", itemID, "page", pageNo)
				continue
			}
			reviews = append(reviews, raw)
		}

		if len(items) < c.pageSize {
			c.debug("short review page, assuming last", "item_id", itemID, "page", pageNo)
			break
		}
	}

	return reviews, nil
}

func (c *ReviewClient) fetchPageWithRetry(ctx context.Context, itemID string, pageNo int) ([]reviewItem, error) {
	items, err := c.fetchPage(ctx, itemID, pageNo)
	if err == nil {
		return items, nil
	}

	c.debug("review page failed, retrying once", "item_id", itemID, "page", pageNo, "error", err)

	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return c.fetchPage(ctx, itemID, pageNo)
}

func (c *ReviewClient) fetchPage(ctx context.Context, itemID string, pageNo int) ([]reviewItem, error) {
	pageURL := c.buildPageURL(itemID, pageNo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request review page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("review source returned %s: %s",
			resp.Status, strings.TrimSpace(string(payload)))
	}

	var page reviewPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode review page: %w", err)
	}

	return page.Model.Items, nil
}

func (c *ReviewClient) buildPageURL(itemID string, pageNo int) string {
	query := url.Values{}
	query.Set("itemId", itemID)
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("filter", "0")
	query.Set("sort", "0")
	query.Set("pageNo", strconv.Itoa(pageNo))
	return c.baseURL + reviewListPath + "?" + query.Encode()
}

// normalize converts an upstream item into the canonical raw shape. Empty
// text drops the record (no sentiment signal); a missing rating defaults to
// the 0 sentinel rather than failing the record.
func normalize(item reviewItem) (domain.RawReview, bool) {
	text := cleanText(item.ReviewContent)
	if text == "" {
		return domain.RawReview{}, false
	}

	var rating float64
	switch {
	case item.RatingStar != nil:
		rating = *item.RatingStar
	case item.Rating != nil:
		rating = *item.Rating
	}

	return domain.RawReview{Text: text, Rating: rating}, true
}

func (c *ReviewClient) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *ReviewClient) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
