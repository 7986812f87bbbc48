package scoring

import (
	"strings"

	"currency-advisor/backend-go/internal/config"
)

// RelevanceScorer rates how strongly a text relates to the tracked financial
// topics and assets. Higher is more relevant; zero means noise.
type RelevanceScorer struct {
	groups  map[string][]string
	symbols []string
}

// NewRelevanceScorer builds a scorer over the keyword groups and the tracked
// currency and crypto symbols. Symbols are matched lowercased.
func NewRelevanceScorer(table config.KeywordTable, currencies, crypto []string) *RelevanceScorer {
	symbols := make([]string, 0, len(currencies)+len(crypto))
	for _, s := range currencies {
		symbols = append(symbols, strings.ToLower(s))
	}
	for _, s := range crypto {
		symbols = append(symbols, strings.ToLower(s))
	}
	return &RelevanceScorer{groups: table.Groups, symbols: symbols}
}

// Score sums +1 per keyword-group hit and +2 per tracked symbol found in the
// text, case-insensitively.
func (s *RelevanceScorer) Score(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	relevance := 0
	for _, keywords := range s.groups {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevance++
			}
		}
	}
	for _, sym := range s.symbols {
		if strings.Contains(lower, sym) {
			relevance += 2
		}
	}
	return relevance
}
