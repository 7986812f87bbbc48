package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

const maxFallbackRecommendations = 5

// RuleBased turns per-asset sentiment scores into recommendations without
// any external service. It is total: given impact data it always produces a
// result, so a failed AI path never leaves the frontend empty.
type RuleBased struct {
	language string
	now      func() time.Time
}

func NewRuleBased(cfg config.Config) *RuleBased {
	return &RuleBased{language: cfg.Language, now: config.KyivNow}
}

func (g *RuleBased) Generate(_ context.Context, news []models.NewsItem, _ models.IndicatorSnapshot, impact map[string]models.CurrencyImpact) (Output, error) {
	now := g.now()

	assets := make([]string, 0, len(impact))
	for asset := range impact {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	recs := make([]models.Recommendation, 0, len(assets))
	positive, negative := 0, 0
	for _, asset := range assets {
		ci := impact[asset]
		if ci.SentimentScore > 0.55 {
			positive++
		} else if ci.SentimentScore < 0.45 {
			negative++
		}

		action, confidence, ok := classify(ci.SentimentScore)
		if !ok {
			continue
		}
		recs = append(recs, models.Recommendation{
			ID:          fmt.Sprintf("%s_%s", asset, now.Format("20060102150405")),
			Asset:       asset,
			Action:      action,
			Confidence:  math.Round(confidence*1000) / 1000,
			Reason:      g.reason(asset, ci),
			Timeframe:   defaultTimeframe(g.language),
			RiskLevel:   "medium",
			GeneratedAt: now.Format(time.RFC3339),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].Asset < recs[j].Asset
	})
	if len(recs) > maxFallbackRecommendations {
		recs = recs[:maxFallbackRecommendations]
	}

	return Output{
		Recommendations: recs,
		Overview: models.MarketOverview{
			Summary:          g.summary(len(news), positive, negative),
			OverallSentiment: overallSentiment(positive, negative),
		},
	}, nil
}

// classify maps a [0,1] sentiment score to an action. The neutral band
// (0.4, 0.6) produces no recommendation. Extreme checks come first so a
// score of 0.25 reads STRONG_AVOID, not AVOID.
func classify(score float64) (string, float64, bool) {
	switch {
	case score >= 0.7:
		return models.ActionStrongBuy, score, true
	case score >= 0.6:
		return models.ActionBuy, score, true
	case score <= 0.3:
		return models.ActionStrongAvoid, 1 - score, true
	case score <= 0.4:
		return models.ActionAvoid, 1 - score, true
	default:
		return "", 0, false
	}
}

func (g *RuleBased) reason(asset string, ci models.CurrencyImpact) string {
	if g.language == "ru" {
		return fmt.Sprintf("Анализ %d новостей: %d позитивных, %d негативных упоминаний %s",
			ci.TotalNews, ci.PositiveNews, ci.NegativeNews, asset)
	}
	return fmt.Sprintf("Аналіз %d новин: %d позитивних, %d негативних згадок %s",
		ci.TotalNews, ci.PositiveNews, ci.NegativeNews, asset)
}

func (g *RuleBased) summary(newsCount, positive, negative int) string {
	if g.language == "ru" {
		return fmt.Sprintf("Автоматический анализ %d новостей: %d активов с позитивным фоном, %d с негативным",
			newsCount, positive, negative)
	}
	return fmt.Sprintf("Автоматичний аналіз %d новин: %d активів з позитивним фоном, %d з негативним",
		newsCount, positive, negative)
}

func overallSentiment(positive, negative int) string {
	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
