package news

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
	"currency-advisor/backend-go/internal/scoring"
)

const (
	maxNewsItems      = 50
	maxEntriesPerFeed = 20
)

// BackfillFunc supplies previously cached news when a run comes up short.
// It returns nil when the cache is empty or expired.
type BackfillFunc func() []models.NewsItem

// Aggregator fetches all configured sources in parallel, normalizes and
// scores the entries, and merges them into one deduplicated batch. A source
// that fails only logs a warning and contributes nothing.
type Aggregator struct {
	sources   []config.NewsSource
	hc        *http.Client
	timeout   time.Duration
	sentiment *scoring.SentimentScorer
	relevance *scoring.RelevanceScorer
	backfill  BackfillFunc
}

func NewAggregator(cfg config.Config, sentiment *scoring.SentimentScorer, relevance *scoring.RelevanceScorer, backfill BackfillFunc) *Aggregator {
	return &Aggregator{
		sources:   config.NewsSources,
		hc:        &http.Client{Timeout: cfg.FetchTimeout},
		timeout:   cfg.FetchTimeout,
		sentiment: sentiment,
		relevance: relevance,
		backfill:  backfill,
	}
}

// Fetch returns up to 50 unique news items from the last hoursBack hours,
// freshest first. When fewer than minCount survive, cached items are appended
// after the fresh ones without resorting. Total failure yields an empty
// slice, never an error.
func (a *Aggregator) Fetch(ctx context.Context, hoursBack, minCount int) []models.NewsItem {
	log.Printf("news: fetching %d sources, window %dh", len(a.sources), hoursBack)

	results := make(chan []models.NewsItem, len(a.sources))
	var wg sync.WaitGroup
	for _, src := range a.sources {
		if src.Type != "rss" {
			continue
		}
		wg.Add(1)
		go func(src config.NewsSource) {
			defer wg.Done()
			items, err := a.fetchSource(ctx, src, hoursBack)
			if err != nil {
				log.Printf("news: %s failed: %v", src.Name, err)
				results <- nil
				return
			}
			results <- items
		}(src)
	}
	wg.Wait()
	close(results)

	var all []models.NewsItem
	for items := range results {
		all = append(all, items...)
	}

	unique := Deduplicate(all)
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Published.After(unique[j].Published)
	})
	if len(unique) > maxNewsItems {
		unique = unique[:maxNewsItems]
	}
	log.Printf("news: %d unique items", len(unique))

	if len(unique) < minCount && a.backfill != nil {
		cached := a.backfill()
		for _, item := range cached {
			if len(unique) >= minCount {
				break
			}
			unique = append(unique, item)
		}
		unique = Deduplicate(unique)
		if len(unique) > maxNewsItems {
			unique = unique[:maxNewsItems]
		}
	}
	return unique
}

func (a *Aggregator) fetchSource(ctx context.Context, src config.NewsSource, hoursBack int) ([]models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	res, err := a.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", res.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	cutoff := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)
	entries := feed.Items
	if len(entries) > maxEntriesPerFeed {
		entries = entries[:maxEntriesPerFeed]
	}

	var items []models.NewsItem
	for _, entry := range entries {
		item := a.normalize(entry, src)
		if item.Published.Before(cutoff) {
			continue
		}
		// Pure noise: neither relevant nor opinionated.
		if item.Relevance == 0 && item.Sentiment == models.SentimentNeutral {
			continue
		}
		items = append(items, item)
	}
	log.Printf("news: %s contributed %d items", src.Name, len(items))
	return items, nil
}

func (a *Aggregator) normalize(entry *gofeed.Item, src config.NewsSource) models.NewsItem {
	title := truncateRunes(strings.TrimSpace(entry.Title), 200)

	summary := entry.Description
	if summary == "" {
		summary = entry.Content
	}
	summary = truncateRunes(StripHTML(summary), 500)

	published := time.Now().UTC()
	if entry.PublishedParsed != nil {
		published = entry.PublishedParsed.UTC()
	} else if parsed, ok := ParseFeedDate(entry.Published); ok {
		published = parsed.UTC()
	}

	text := title + " " + summary
	return models.NewsItem{
		ID:        newsID(title, entry.Link, src.Name),
		Title:     title,
		Summary:   summary,
		Link:      entry.Link,
		Published: published,
		Source:    src.Name,
		Category:  src.Category,
		Sentiment: a.sentiment.Score(text),
		Relevance: a.relevance.Score(text),
	}
}

// Deduplicate keeps the first item for each normalized-title key, preserving
// input order.
func Deduplicate(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		key := TitleKey(item.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// TitleKey is the dedup key: the first 100 characters of the lowercased title.
func TitleKey(title string) string {
	key := strings.ToLower(title)
	runes := []rune(key)
	if len(runes) > 100 {
		key = string(runes[:100])
	}
	return key
}

func newsID(title, link, source string) string {
	sum := md5.Sum([]byte(title + link + source))
	return hex.EncodeToString(sum[:])[:10]
}
