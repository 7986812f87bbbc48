package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

const (
	latestFile    = "recommendations.json"
	historyFile   = "history_recommendations.json"
	newsCacheFile = "news_cache.json"

	maxHistoryEntries = 100
	maxCachedNews     = 50
)

// Store is the file-backed persistence gateway: latest result, rolling
// history and the news cache blob. Writes go through a tmp file plus rename
// so readers never observe a partial document.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveLatest persists the result of one analysis cycle for the frontend.
func (s *Store) SaveLatest(result models.AnalysisResult) error {
	return s.writeJSON(latestFile, result)
}

// LoadLatest returns the most recently persisted result. The second return
// is false when no run has completed yet.
func (s *Store) LoadLatest() (models.AnalysisResult, bool) {
	var result models.AnalysisResult
	if err := s.readJSON(latestFile, &result); err != nil {
		return models.AnalysisResult{}, false
	}
	return result, result.LastUpdate != ""
}

// AppendHistory adds one entry to the rolling log, truncating oldest-first
// at 100 entries.
func (s *Store) AppendHistory(entry models.HistoryEntry) error {
	var history []models.HistoryEntry
	if err := s.readJSON(historyFile, &history); err != nil && !os.IsNotExist(err) {
		log.Printf("store: history unreadable, starting fresh: %v", err)
	}
	history = append(history, entry)
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}
	return s.writeJSON(historyFile, history)
}

// LoadHistory returns the entries from the last days days, oldest first.
func (s *Store) LoadHistory(days int) []models.HistoryEntry {
	var history []models.HistoryEntry
	if err := s.readJSON(historyFile, &history); err != nil {
		return nil
	}
	cutoff := config.KyivNow().AddDate(0, 0, -days)
	out := make([]models.HistoryEntry, 0, len(history))
	for _, entry := range history {
		ts, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil {
			continue
		}
		if !ts.Before(cutoff) {
			out = append(out, entry)
		}
	}
	return out
}

type newsCache struct {
	LastUpdate  string            `json:"last_update"`
	News        []models.NewsItem `json:"news"`
	NewsCount   int               `json:"news_count"`
	CacheExpiry string            `json:"cache_expiry"`
}

// SaveNewsCache stores up to 50 items with an explicit expiry instant.
func (s *Store) SaveNewsCache(news []models.NewsItem, ttl time.Duration) error {
	if len(news) == 0 {
		return nil
	}
	if len(news) > maxCachedNews {
		news = news[:maxCachedNews]
	}
	now := config.KyivNow()
	return s.writeJSON(newsCacheFile, newsCache{
		LastUpdate:  now.Format(time.RFC3339),
		News:        news,
		NewsCount:   len(news),
		CacheExpiry: now.Add(ttl).Format(time.RFC3339),
	})
}

// LoadNewsCache returns the cached batch, or nil when absent or expired.
func (s *Store) LoadNewsCache() []models.NewsItem {
	var cached newsCache
	if err := s.readJSON(newsCacheFile, &cached); err != nil {
		return nil
	}
	expiry, err := time.Parse(time.RFC3339, cached.CacheExpiry)
	if err != nil || !config.KyivNow().Before(expiry) {
		return nil
	}
	return cached.News
}

// Statistics rolls up the last 30 days of history: run count, average
// recommendations per run, and which assets drew the most buy calls.
func (s *Store) Statistics() models.Statistics {
	history := s.LoadHistory(30)
	stats := models.Statistics{MostRecommended: []models.AssetCount{}}
	if len(history) == 0 {
		return stats
	}

	stats.TotalAnalyses = len(history)
	stats.LastAnalysis = history[len(history)-1].Timestamp

	total := 0
	buyCounts := make(map[string]int)
	for _, entry := range history {
		total += entry.RecommendationsCount
		for _, rec := range entry.TopRecommendations {
			if rec.Action == models.ActionBuy || rec.Action == models.ActionStrongBuy {
				buyCounts[rec.Asset]++
			}
		}
	}
	stats.AvgRecommendations = float64(total) / float64(len(history))

	for asset, count := range buyCounts {
		stats.MostRecommended = append(stats.MostRecommended, models.AssetCount{Asset: asset, Count: count})
	}
	sort.Slice(stats.MostRecommended, func(i, j int) bool {
		if stats.MostRecommended[i].Count != stats.MostRecommended[j].Count {
			return stats.MostRecommended[i].Count > stats.MostRecommended[j].Count
		}
		return stats.MostRecommended[i].Asset < stats.MostRecommended[j].Asset
	})
	if len(stats.MostRecommended) > 5 {
		stats.MostRecommended = stats.MostRecommended[:5]
	}
	return stats
}

func (s *Store) writeJSON(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) readJSON(name string, v any) error {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
