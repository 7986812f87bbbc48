package impact

import (
	"testing"

	"currency-advisor/backend-go/internal/models"
)

var testKeywords = map[string][]string{
	"USD": {"долар", "фрс", "usd"},
	"EUR": {"євро", "єцб"},
}

func TestAnalyzeCountsAndScore(t *testing.T) {
	a := NewAnalyzer(testKeywords)
	news := []models.NewsItem{
		{Title: "Долар міцнішає", Sentiment: models.SentimentPositive},
		{Title: "ФРС обіцяє стабільність", Sentiment: models.SentimentPositive},
		{Title: "Тиск на долар зростає", Sentiment: models.SentimentNegative},
		{Title: "Курс USD без змін", Sentiment: models.SentimentNeutral},
	}

	got := a.Analyze(news, models.IndicatorSnapshot{})["USD"]
	if got.PositiveNews != 2 || got.NegativeNews != 1 || got.NeutralNews != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.TotalNews != 4 {
		t.Fatalf("expected 4 matched items, got %d", got.TotalNews)
	}
	// ((2-1)/4 + 1) / 2 = 0.625
	if got.SentimentScore != 0.625 {
		t.Fatalf("expected score 0.625, got %v", got.SentimentScore)
	}
	if len(got.KeyEvents) != 3 {
		t.Fatalf("key events capped at 3, got %d", len(got.KeyEvents))
	}
}

func TestAnalyzeNeutralPriorWithoutMatches(t *testing.T) {
	a := NewAnalyzer(testKeywords)
	got := a.Analyze(nil, models.IndicatorSnapshot{})["EUR"]
	if got.SentimentScore != 0.5 {
		t.Fatalf("expected neutral prior 0.5, got %v", got.SentimentScore)
	}
	if got.TotalNews != 0 {
		t.Fatalf("expected no matches, got %d", got.TotalNews)
	}
}

func TestAnalyzeScoreStaysInRange(t *testing.T) {
	a := NewAnalyzer(map[string][]string{"USD": {"долар"}})
	allNegative := []models.NewsItem{
		{Title: "долар 1", Sentiment: models.SentimentNegative},
		{Title: "долар 2", Sentiment: models.SentimentNegative},
	}
	got := a.Analyze(allNegative, models.IndicatorSnapshot{})["USD"]
	if got.SentimentScore != 0 {
		t.Fatalf("all-negative batch must score 0, got %v", got.SentimentScore)
	}

	allPositive := []models.NewsItem{
		{Title: "долар 3", Sentiment: models.SentimentPositive},
	}
	got = a.Analyze(allPositive, models.IndicatorSnapshot{})["USD"]
	if got.SentimentScore != 1 {
		t.Fatalf("all-positive batch must score 1, got %v", got.SentimentScore)
	}
}
