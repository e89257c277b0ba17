package domain

// SentimentLabel classifies a review as Positive, Negative, or Neutral.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// Labels lists every sentiment label in a stable order.
func Labels() []SentimentLabel {
	return []SentimentLabel{SentimentPositive, SentimentNegative, SentimentNeutral}
}

// RawReview is the upstream-native shape of one review entry. It is owned by
// the review source client and discarded after normalization.
type RawReview struct {
	Text   string
	Rating float64
}

// Review is the canonical enriched record produced by the pipeline.
type Review struct {
	ProductName    string         `json:"product_name"`
	ReviewText     string         `json:"review_text"`
	Rating         float64        `json:"rating"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	SentimentScore float64        `json:"sentiment_score"`
}

// ProductMetadata carries best-effort product page details. An empty name is
// replaced by UnknownProductName before it reaches a Review.
type ProductMetadata struct {
	Name string
}

// UnknownProductName is the placeholder used when the product page cannot be
// fetched or no name selector matches.
const UnknownProductName = "Unknown Product"

// SentimentCounts maps every label to its count; all three keys are always
// present, even at zero.
type SentimentCounts map[SentimentLabel]int

// NewSentimentCounts returns a zeroed count for each label.
func NewSentimentCounts() SentimentCounts {
	counts := make(SentimentCounts, 3)
	for _, label := range Labels() {
		counts[label] = 0
	}
	return counts
}

// PipelineResult is the terminal artifact of one pipeline invocation.
// Reviews keep retrieval order; Warnings record non-fatal degradations
// (unreachable product page, partial review pages, partial sheet writes).
type PipelineResult struct {
	Reviews  []Review        `json:"data"`
	Counts   SentimentCounts `json:"counts"`
	SheetURL string          `json:"sheet_url"`
	Warnings []string        `json:"warnings,omitempty"`
}
