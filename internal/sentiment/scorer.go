// Package sentiment provides a deterministic lexicon-based polarity scorer
// and the per-label aggregation used by the pipeline. No model, no network:
// the same text always yields the same score.
package sentiment

import (
	"strings"
	"unicode"

	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

// Thresholds for mapping a score to a label: a symmetric dead band around
// zero. Score > +0.1 is Positive, score < -0.1 is Negative, anything in
// between is Neutral. Exhaustive and non-overlapping.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// negationWindow is how many tokens a negator reaches forward.
const negationWindow = 3

// Scorer maps review text to a polarity score in [-1,1] and a label.
type Scorer struct{}

var _ ports.SentimentScorer = (*Scorer)(nil)

// NewScorer returns the lexicon scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score tokenizes the text and averages the matched lexicon weights, with
// negation flipping and intensifier scaling applied per match. Empty text or
// text with no sentiment-bearing tokens scores 0.0, Neutral.
func (s *Scorer) Score(text string) (float64, domain.SentimentLabel) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, domain.SentimentNeutral
	}

	var (
		total   float64
		matched int
	)

	for i, token := range tokens {
		weight, ok := lexicon[token]
		if !ok {
			continue
		}

		factor := 1.0
		for back := 1; back <= negationWindow && i-back >= 0; back++ {
			prev := tokens[i-back]
			if _, negated := negators[prev]; negated {
				factor = -factor
				break
			}
			if scale, ok := intensifiers[prev]; ok && back == 1 {
				factor *= scale
			}
		}

		total += clamp(weight * factor)
		matched++
	}

	if matched == 0 {
		return 0, domain.SentimentNeutral
	}

	score := clamp(total / float64(matched))
	return score, Label(score)
}

// Label applies the thresholding policy to a score.
func Label(score float64) domain.SentimentLabel {
	switch {
	case score > positiveThreshold:
		return domain.SentimentPositive
	case score < negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// tokenize lowercases, strips apostrophes, and splits on anything that is
// not a letter or digit.
func tokenize(text string) []string {
	cleaned := strings.ToLower(text)
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, "’", "")
	return strings.FieldsFunc(cleaned, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
