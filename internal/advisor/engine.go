package advisor

import (
	"context"
	"log"

	"currency-advisor/backend-go/internal/models"
)

// Output is what a generator produces for one cycle.
type Output struct {
	Recommendations []models.Recommendation
	Overview        models.MarketOverview
}

// Generator produces recommendations from one cycle's inputs.
type Generator interface {
	Generate(ctx context.Context, news []models.NewsItem, snapshot models.IndicatorSnapshot, impact map[string]models.CurrencyImpact) (Output, error)
}

// Engine tries the AI generator first and falls back to the rule-based one
// on any error. The fallback is total, so Generate never fails.
type Engine struct {
	primary  Generator
	fallback Generator
}

func NewEngine(primary, fallback Generator) *Engine {
	return &Engine{primary: primary, fallback: fallback}
}

func (e *Engine) Generate(ctx context.Context, news []models.NewsItem, snapshot models.IndicatorSnapshot, impact map[string]models.CurrencyImpact) (Output, error) {
	if e.primary != nil {
		out, err := e.primary.Generate(ctx, news, snapshot, impact)
		if err == nil {
			return out, nil
		}
		log.Printf("engine: ai generation failed, using rule-based fallback: %v", err)
	}
	return e.fallback.Generate(ctx, news, snapshot, impact)
}
