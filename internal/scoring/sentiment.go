package scoring

import (
	"strings"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

// SentimentScorer classifies free text as positive, negative or neutral by
// weighted keyword matching. It is a pure function of the text and the table
// it was constructed with.
type SentimentScorer struct {
	table config.KeywordTable
}

func NewSentimentScorer(table config.KeywordTable) *SentimentScorer {
	return &SentimentScorer{table: table}
}

// Score counts positive and negative keyword hits (+2 for the strong subsets,
// +1 otherwise) and requires a 1.5x lead before leaving neutral. Ties and
// keyword-free text stay neutral.
func (s *SentimentScorer) Score(text string) string {
	if text == "" {
		return models.SentimentNeutral
	}
	lower := strings.ToLower(text)

	var positive, negative float64
	for _, w := range s.table.Positive {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range s.table.Negative {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	for _, w := range s.table.StrongPositive {
		if strings.Contains(lower, w) {
			positive += 2
		}
	}
	for _, w := range s.table.StrongNegative {
		if strings.Contains(lower, w) {
			negative += 2
		}
	}

	switch {
	case positive == 0 && negative == 0:
		return models.SentimentNeutral
	case positive > negative*1.5:
		return models.SentimentPositive
	case negative > positive*1.5:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
