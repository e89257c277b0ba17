// Package daraz integrates with the Daraz product catalog: product-id
// extraction from listing URLs, product-name parsing from rendered pages,
// and the paginated review-listing API client.
package daraz

import (
	"fmt"
	"regexp"
	"strings"

	"ReviewScanner/internal/domain"
)

// Daraz product URLs embed the item id as "...-i<digits>-s<sku>.html". The
// fallback covers older URL shapes where only a long digit run after
// /products/ identifies the item.
var (
	itemIDExpr   = regexp.MustCompile(`-i(\d+)`)
	fallbackExpr = regexp.MustCompile(`/products/.*?(\d{9,})`)
)

// ExtractItemID resolves a product-page URL to its canonical item id. Pure
// string operation, no retry. Returns domain.ErrInvalidReference when no
// pattern matches.
func ExtractItemID(productURL string) (string, error) {
	trimmed := strings.TrimSpace(productURL)
	if trimmed == "" {
		return "", fmt.Errorf("empty product URL: %w", domain.ErrInvalidReference)
	}

	if m := itemIDExpr.FindStringSubmatch(trimmed); m != nil {
		return m[1], nil
	}

	if m := fallbackExpr.FindStringSubmatch(trimmed); m != nil {
		return m[1], nil
	}

	return "", fmt.Errorf("no item id in %q: %w", trimmed, domain.ErrInvalidReference)
}
