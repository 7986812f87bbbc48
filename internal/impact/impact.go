package impact

import (
	"strings"

	"currency-advisor/backend-go/internal/models"
)

const maxKeyEvents = 3

// Analyzer counts sentiment-tagged news mentions per tracked asset and
// reduces them to a normalized score. Keyword tables come from configuration.
type Analyzer struct {
	keywords map[string][]string
}

func NewAnalyzer(keywords map[string][]string) *Analyzer {
	return &Analyzer{keywords: keywords}
}

// Analyze scans the full batch once per asset. sentiment_score is
// ((positive-negative)/total + 1) / 2, clamped to [0,1] by construction;
// with no matches it stays at the 0.5 neutral prior.
func (a *Analyzer) Analyze(news []models.NewsItem, indicators models.IndicatorSnapshot) map[string]models.CurrencyImpact {
	out := make(map[string]models.CurrencyImpact, len(a.keywords))

	for asset, keywords := range a.keywords {
		result := models.CurrencyImpact{
			Asset:          asset,
			SentimentScore: 0.5,
			KeyEvents:      []models.KeyEvent{},
		}

		for _, item := range news {
			if !matches(item, keywords) {
				continue
			}
			result.TotalNews++
			switch item.Sentiment {
			case models.SentimentPositive:
				result.PositiveNews++
			case models.SentimentNegative:
				result.NegativeNews++
			default:
				result.NeutralNews++
			}
			if len(result.KeyEvents) < maxKeyEvents {
				result.KeyEvents = append(result.KeyEvents, models.KeyEvent{
					Title:     item.Title,
					Sentiment: item.Sentiment,
				})
			}
		}

		if result.TotalNews > 0 {
			diff := float64(result.PositiveNews - result.NegativeNews)
			result.SentimentScore = (diff/float64(result.TotalNews) + 1) / 2
		}
		out[asset] = result
	}
	return out
}

func matches(item models.NewsItem, keywords []string) bool {
	text := strings.ToLower(item.Title + " " + item.Summary)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
