package store

import (
	"fmt"
	"testing"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func TestSaveAndLoadLatest(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.LoadLatest(); ok {
		t.Fatal("empty store must report no result")
	}

	result := models.AnalysisResult{
		AnalysisID: "run-1",
		LastUpdate: "2024-03-06T14:00:00+02:00",
		Recommendations: []models.Recommendation{
			{Asset: "USD", Action: models.ActionBuy, Confidence: 0.8},
		},
	}
	if err := s.SaveLatest(result); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.LoadLatest()
	if !ok {
		t.Fatal("saved result must load")
	}
	if got.AnalysisID != "run-1" || len(got.Recommendations) != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestHistoryBoundedAt100(t *testing.T) {
	s := newTestStore(t)
	now := config.KyivNow()
	for i := 0; i < 105; i++ {
		entry := models.HistoryEntry{
			Timestamp:  now.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			AnalysisID: fmt.Sprintf("run-%d", i),
		}
		if err := s.AppendHistory(entry); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history := s.LoadHistory(7)
	if len(history) != 100 {
		t.Fatalf("expected 100 entries after truncation, got %d", len(history))
	}
	if history[0].AnalysisID != "run-5" {
		t.Fatalf("oldest entries must be dropped first, got %s", history[0].AnalysisID)
	}
}

func TestLoadHistoryFiltersByDays(t *testing.T) {
	s := newTestStore(t)
	now := config.KyivNow()
	old := models.HistoryEntry{Timestamp: now.AddDate(0, 0, -10).Format(time.RFC3339), AnalysisID: "old"}
	fresh := models.HistoryEntry{Timestamp: now.Format(time.RFC3339), AnalysisID: "fresh"}
	_ = s.AppendHistory(old)
	_ = s.AppendHistory(fresh)

	history := s.LoadHistory(7)
	if len(history) != 1 || history[0].AnalysisID != "fresh" {
		t.Fatalf("expected only the fresh entry, got %+v", history)
	}
}

func TestNewsCacheExpiry(t *testing.T) {
	s := newTestStore(t)
	news := []models.NewsItem{{ID: "n1", Title: "Новина"}}

	if err := s.SaveNewsCache(news, time.Hour); err != nil {
		t.Fatalf("save cache: %v", err)
	}
	if got := s.LoadNewsCache(); len(got) != 1 {
		t.Fatalf("fresh cache must load, got %d items", len(got))
	}

	if err := s.SaveNewsCache(news, -time.Minute); err != nil {
		t.Fatalf("save cache: %v", err)
	}
	if got := s.LoadNewsCache(); got != nil {
		t.Fatal("expired cache must not be returned")
	}
}

func TestStatistics(t *testing.T) {
	s := newTestStore(t)
	now := config.KyivNow()
	for i := 0; i < 3; i++ {
		_ = s.AppendHistory(models.HistoryEntry{
			Timestamp:            now.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
			AnalysisID:           fmt.Sprintf("run-%d", i),
			RecommendationsCount: 4,
			TopRecommendations: []models.Recommendation{
				{Asset: "USD", Action: models.ActionBuy},
				{Asset: "EUR", Action: models.ActionAvoid},
			},
		})
	}

	stats := s.Statistics()
	if stats.TotalAnalyses != 3 {
		t.Fatalf("expected 3 analyses, got %d", stats.TotalAnalyses)
	}
	if stats.AvgRecommendations != 4 {
		t.Fatalf("expected avg 4, got %v", stats.AvgRecommendations)
	}
	if len(stats.MostRecommended) != 1 || stats.MostRecommended[0].Asset != "USD" {
		t.Fatalf("expected USD as most recommended, got %+v", stats.MostRecommended)
	}
	if stats.MostRecommended[0].Count != 3 {
		t.Fatalf("expected 3 buy calls, got %d", stats.MostRecommended[0].Count)
	}
}
