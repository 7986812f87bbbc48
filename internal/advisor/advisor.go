package advisor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

// Analysis runs at fixed Kyiv hours.
var analysisHours = []int{8, 12, 16, 20}

type newsFetcher interface {
	Fetch(ctx context.Context, hoursBack, minCount int) []models.NewsItem
}

type indicatorCollector interface {
	Collect(ctx context.Context) models.IndicatorSnapshot
}

type impactAnalyzer interface {
	Analyze(news []models.NewsItem, indicators models.IndicatorSnapshot) map[string]models.CurrencyImpact
}

type persister interface {
	SaveLatest(result models.AnalysisResult) error
	AppendHistory(entry models.HistoryEntry) error
	SaveNewsCache(news []models.NewsItem, ttl time.Duration) error
}

// Advisor orchestrates one analysis cycle: gather news and indicators
// concurrently, measure per-asset impact, generate recommendations and
// persist the result.
type Advisor struct {
	cfg        config.Config
	news       newsFetcher
	indicators indicatorCollector
	impact     impactAnalyzer
	engine     Generator
	store      persister
	now        func() time.Time
}

func New(cfg config.Config, news newsFetcher, indicators indicatorCollector, impact impactAnalyzer, engine Generator, store persister) *Advisor {
	return &Advisor{
		cfg:        cfg,
		news:       news,
		indicators: indicators,
		impact:     impact,
		engine:     engine,
		store:      store,
		now:        config.KyivNow,
	}
}

// Run executes one full cycle and returns the assembled result. The result
// is persisted as the latest document unless the cycle produced no
// recommendations, in which case the previous document stays in place.
func (a *Advisor) Run(ctx context.Context) (models.AnalysisResult, error) {
	start := a.now()
	log.Printf("advisor: analysis cycle started at %s", start.Format(time.RFC3339))

	var (
		wg       sync.WaitGroup
		news     []models.NewsItem
		snapshot models.IndicatorSnapshot
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		news = a.news.Fetch(ctx, a.cfg.NewsHoursBack, a.cfg.MinNewsCount)
	}()
	go func() {
		defer wg.Done()
		snapshot = a.indicators.Collect(ctx)
	}()
	wg.Wait()

	impact := a.impact.Analyze(news, snapshot)

	out, err := a.engine.Generate(ctx, news, snapshot, impact)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	result := a.assemble(out, news, impact)

	if len(result.Recommendations) == 0 {
		log.Print("advisor: no recommendations generated, keeping previous result")
	} else {
		if err := a.store.SaveLatest(result); err != nil {
			log.Printf("advisor: save latest: %v", err)
		}
		if err := a.store.AppendHistory(models.HistoryEntry{
			Timestamp:            result.LastUpdate,
			AnalysisID:           result.AnalysisID,
			RecommendationsCount: len(result.Recommendations),
			MarketOverview:       result.MarketOverview,
			TopRecommendations:   topRecommendations(result.Recommendations, 3),
		}); err != nil {
			log.Printf("advisor: append history: %v", err)
		}
	}
	if err := a.store.SaveNewsCache(news, a.cfg.NewsCacheTTL); err != nil {
		log.Printf("advisor: save news cache: %v", err)
	}

	log.Printf("advisor: cycle done, %d recommendations from %d news", len(result.Recommendations), len(news))
	return result, nil
}

func (a *Advisor) assemble(out Output, news []models.NewsItem, impact map[string]models.CurrencyImpact) models.AnalysisResult {
	now := a.now()

	overview := out.Overview
	overview.BestCurrency, overview.WorstCurrency = bestAndWorst(impact)
	for _, rec := range out.Recommendations {
		switch rec.Action {
		case models.ActionBuy, models.ActionStrongBuy:
			overview.BuyCount++
		case models.ActionAvoid, models.ActionStrongAvoid:
			overview.AvoidCount++
		}
	}

	return models.AnalysisResult{
		AnalysisID:           uuid.NewString(),
		LastUpdate:           now.Format(time.RFC3339),
		LastUpdateDisplay:    now.Format("02.01.2006 15:04"),
		Timezone:             "Europe/Kiev (UTC+2)",
		Language:             a.cfg.Language,
		Recommendations:      out.Recommendations,
		MarketOverview:       overview,
		TotalRecommendations: len(out.Recommendations),
		NewsCount:            len(news),
		Impact:               impact,
		NextAnalysis:         NextRun(now).Format(time.RFC3339),
	}
}

// bestAndWorst picks the assets with the highest and lowest sentiment
// scores, skipping assets no news mentioned.
func bestAndWorst(impact map[string]models.CurrencyImpact) (best, worst string) {
	bestScore, worstScore := -1.0, 2.0
	for asset, ci := range impact {
		if ci.TotalNews == 0 {
			continue
		}
		if ci.SentimentScore > bestScore || (ci.SentimentScore == bestScore && asset < best) {
			best, bestScore = asset, ci.SentimentScore
		}
		if ci.SentimentScore < worstScore || (ci.SentimentScore == worstScore && asset < worst) {
			worst, worstScore = asset, ci.SentimentScore
		}
	}
	return best, worst
}

// NextRun returns the next scheduled slot strictly after now,
// rolling to the first slot of the next day when today's are exhausted.
func NextRun(now time.Time) time.Time {
	for _, h := range analysisHours {
		slot := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())
		if slot.After(now) {
			return slot
		}
	}
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), analysisHours[0], 0, 0, 0, now.Location())
}

func topRecommendations(recs []models.Recommendation, n int) []models.Recommendation {
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
