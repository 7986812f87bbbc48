package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

const minNewsForAI = 3

var validActions = map[string]bool{
	models.ActionStrongBuy:   true,
	models.ActionBuy:         true,
	models.ActionNeutral:     true,
	models.ActionAvoid:       true,
	models.ActionStrongAvoid: true,
}

// AIGenerator asks the completion service for a full analysis and validates
// the response before anything reaches the frontend. Any failure is returned
// as an error so the engine can fall back.
type AIGenerator struct {
	completer          Completer
	language           string
	minConfidence      float64
	maxRecommendations int
	now                func() time.Time
}

func NewAIGenerator(completer Completer, cfg config.Config) *AIGenerator {
	return &AIGenerator{
		completer:          completer,
		language:           cfg.Language,
		minConfidence:      cfg.MinConfidence,
		maxRecommendations: cfg.MaxRecommendations,
		now:                config.KyivNow,
	}
}

func (g *AIGenerator) Generate(ctx context.Context, news []models.NewsItem, snapshot models.IndicatorSnapshot, impact map[string]models.CurrencyImpact) (Output, error) {
	if len(news) < minNewsForAI {
		return Output{}, fmt.Errorf("not enough news for analysis: %d", len(news))
	}

	now := g.now()
	raw, err := g.completer.Complete(ctx, systemPrompt(g.language), buildPrompt(news, snapshot, g.language, now))
	if err != nil {
		return Output{}, err
	}

	var analysis models.AIAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return Output{}, fmt.Errorf("parse ai response: %w", err)
	}

	recs := g.validate(analysis.Recommendations, now)
	if len(recs) == 0 {
		return Output{}, errors.New("ai response contained no valid recommendations")
	}

	return Output{
		Recommendations: recs,
		Overview: models.MarketOverview{
			Summary:          analysis.MarketOverview,
			OverallSentiment: normalizeSentiment(analysis.OverallSentiment),
			KeyRisks:         analysis.KeyRisks,
			GeneralAdvice:    analysis.GeneralAdvice,
		},
	}, nil
}

// validate drops entries missing required fields or below the confidence
// floor, coerces unknown actions to NEUTRAL, sorts by confidence and caps
// the list.
func (g *AIGenerator) validate(raw []models.AIRecommendation, now time.Time) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(raw))
	for _, r := range raw {
		if r.Asset == "" || r.Action == "" || r.Reason == "" {
			continue
		}
		if r.Confidence < g.minConfidence {
			continue
		}
		action := r.Action
		if !validActions[action] {
			action = models.ActionNeutral
		}
		timeframe := r.Timeframe
		if timeframe == "" {
			timeframe = defaultTimeframe(g.language)
		}
		riskLevel := r.RiskLevel
		if riskLevel == "" {
			riskLevel = "medium"
		}
		recs = append(recs, models.Recommendation{
			ID:          fmt.Sprintf("%s_%s", r.Asset, now.Format("20060102150405")),
			Asset:       r.Asset,
			Action:      action,
			Confidence:  math.Round(r.Confidence*1000) / 1000,
			Reason:      r.Reason,
			Timeframe:   timeframe,
			RiskLevel:   riskLevel,
			GeneratedAt: now.Format(time.RFC3339),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > g.maxRecommendations {
		recs = recs[:g.maxRecommendations]
	}
	return recs
}

func normalizeSentiment(s string) string {
	switch s {
	case models.SentimentPositive, models.SentimentNegative:
		return s
	default:
		return models.SentimentNeutral
	}
}

func defaultTimeframe(language string) string {
	if language == "ru" {
		return "1-2 дня"
	}
	return "1-2 дні"
}
