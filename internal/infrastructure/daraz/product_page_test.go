package daraz

import (
	"context"
	"errors"
	"testing"

	"ReviewScanner/internal/domain"
)

type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) FetchHTML(context.Context, string) (string, error) {
	return s.html, s.err
}

func TestFetchMetadataBadgeTitle(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	  <div class="pdp-mod-product-badge-title">  Brite  Maximum
	  Power 500g </div>
	  <h1>Other Heading</h1>
	</body></html>`

	page := NewProductPage(&stubFetcher{html: html}, nil)
	meta, err := page.FetchMetadata(context.Background(), "https://example.test/p-i1.html")
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta.Name != "Brite Maximum Power 500g" {
		t.Fatalf("unexpected name: %q", meta.Name)
	}
}

func TestFetchMetadataFallsBackToH1(t *testing.T) {
	t.Parallel()

	html := `<html><body><h1>Audionic Airbud 590</h1></body></html>`

	page := NewProductPage(&stubFetcher{html: html}, nil)
	meta, err := page.FetchMetadata(context.Background(), "https://example.test/p-i1.html")
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta.Name != "Audionic Airbud 590" {
		t.Fatalf("unexpected name: %q", meta.Name)
	}
}

func TestFetchMetadataFallsBackToOGTitle(t *testing.T) {
	t.Parallel()

	html := `<html><head><meta property="og:title" content="OG Product Name"></head><body></body></html>`

	page := NewProductPage(&stubFetcher{html: html}, nil)
	meta, err := page.FetchMetadata(context.Background(), "https://example.test/p-i1.html")
	if err != nil {
		t.Fatalf("FetchMetadata returned error: %v", err)
	}
	if meta.Name != "OG Product Name" {
		t.Fatalf("unexpected name: %q", meta.Name)
	}
}

func TestFetchMetadataNoSelectorMatches(t *testing.T) {
	t.Parallel()

	page := NewProductPage(&stubFetcher{html: "<html><body><p>nothing here</p></body></html>"}, nil)
	meta, err := page.FetchMetadata(context.Background(), "https://example.test/p-i1.html")
	if err != nil {
		t.Fatalf("missing selectors must not fail, got: %v", err)
	}
	if meta.Name != domain.UnknownProductName {
		t.Fatalf("expected placeholder name, got %q", meta.Name)
	}
}

func TestFetchMetadataFetcherDown(t *testing.T) {
	t.Parallel()

	page := NewProductPage(&stubFetcher{err: errors.New("connection refused")}, nil)
	meta, err := page.FetchMetadata(context.Background(), "https://example.test/p-i1.html")
	if !errors.Is(err, domain.ErrFetchUnavailable) {
		t.Fatalf("expected ErrFetchUnavailable, got %v", err)
	}
	if meta.Name != domain.UnknownProductName {
		t.Fatalf("expected placeholder name even on error, got %q", meta.Name)
	}
}
