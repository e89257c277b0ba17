package daraz

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

var whitespaceExpr = regexp.MustCompile(`\s+`)

// ProductPage extracts product metadata from the rendered product page.
// The name is cosmetic: every selector missing degrades to a placeholder,
// only an unreachable fetcher is reported as an error.
type ProductPage struct {
	fetcher ports.PageFetcher
	logger  *slog.Logger
}

var _ ports.MetadataSource = (*ProductPage)(nil)

// NewProductPage wires the page-fetch capability.
func NewProductPage(fetcher ports.PageFetcher, log *slog.Logger) *ProductPage {
	return &ProductPage{fetcher: fetcher, logger: log}
}

// FetchMetadata renders the product page and tries the name selectors in
// priority order: the product badge title, any h1, then the og:title meta.
// All misses yield domain.UnknownProductName without an error; a fetch
// failure wraps domain.ErrFetchUnavailable.
func (p *ProductPage) FetchMetadata(ctx context.Context, productURL string) (domain.ProductMetadata, error) {
	html, err := p.fetcher.FetchHTML(ctx, productURL)
	if err != nil {
		return domain.ProductMetadata{Name: domain.UnknownProductName},
			fmt.Errorf("fetch product page: %w: %w", domain.ErrFetchUnavailable, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.debug("parse product page failed", "error", err)
		return domain.ProductMetadata{Name: domain.UnknownProductName}, nil
	}

	name := extractName(doc)
	if name == "" {
		p.debug("no product name selector matched", "url", productURL)
		name = domain.UnknownProductName
	}

	return domain.ProductMetadata{Name: name}, nil
}

func extractName(doc *goquery.Document) string {
	if name := cleanText(doc.Find(".pdp-mod-product-badge-title").First().Text()); name != "" {
		return name
	}

	if name := cleanText(doc.Find("h1").First().Text()); name != "" {
		return name
	}

	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return cleanText(content)
	}

	return ""
}

func cleanText(text string) string {
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " "))
}

func (p *ProductPage) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
