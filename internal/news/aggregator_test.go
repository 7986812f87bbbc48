package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
	"currency-advisor/backend-go/internal/scoring"
)

func testAggregator(backfill BackfillFunc) *Aggregator {
	cfg := config.Config{FetchTimeout: 2 * time.Second}
	sentiment := scoring.NewSentimentScorer(config.Keywords)
	relevance := scoring.NewRelevanceScorer(config.Keywords, config.Currencies, config.Crypto)
	return NewAggregator(cfg, sentiment, relevance, backfill)
}

func TestDeduplicateByTitlePrefix(t *testing.T) {
	items := []models.NewsItem{
		{Title: "Fed raises rates"},
		{Title: "FED RAISES RATES"},
		{Title: "ECB holds"},
	}
	got := Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique items, got %d", len(got))
	}
	if got[0].Title != "Fed raises rates" {
		t.Fatalf("first occurrence must win, got %q", got[0].Title)
	}
}

func TestTitleKeyUsesFirst100Chars(t *testing.T) {
	long := make([]rune, 0, 120)
	for i := 0; i < 120; i++ {
		long = append(long, 'а') // Cyrillic
	}
	a := string(long)
	b := string(long[:100]) + "інший хвіст"
	if TitleKey(a) != TitleKey(b) {
		t.Fatal("titles equal in the first 100 chars must collide")
	}
}

func TestStripHTML(t *testing.T) {
	in := "<p>Курс <b>долара</b> &amp; євро&nbsp;зріс</p>"
	want := "Курс долара & євро зріс"
	if got := StripHTML(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseFeedDateFormats(t *testing.T) {
	got, ok := ParseFeedDate("Mon, 02 Jan 2006 15:04:05 +0200")
	if !ok {
		t.Fatal("RFC1123Z date must parse")
	}
	if got.Year() != 2006 {
		t.Fatalf("unexpected year %d", got.Year())
	}

	got, ok = ParseFeedDate("15 серпня 2024, 10:30")
	if !ok {
		t.Fatal("Ukrainian month date must parse")
	}
	if got.Month() != time.August || got.Day() != 15 || got.Year() != 2024 {
		t.Fatalf("unexpected date %v", got)
	}

	if _, ok := ParseFeedDate("not a date"); ok {
		t.Fatal("garbage must not parse")
	}
	if _, ok := ParseFeedDate(""); ok {
		t.Fatal("empty string must not parse")
	}
}

func TestFetchSurvivesFailingSource(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Format(time.RFC1123Z)
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>test</title>
<item><title>Інфляція в США зростає, долар USD під тиском</title><link>http://x/1</link><pubDate>` + now + `</pubDate><description>Ціни зростають</description></item>
<item><title>Спортивні новини без фінансів</title><link>http://x/2</link><pubDate>` + now + `</pubDate><description>матч завершився</description></item>
</channel></rss>`))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	a := testAggregator(nil)
	a.sources = []config.NewsSource{
		{Name: "good", URL: good.URL, Type: "rss", Category: "finance"},
		{Name: "bad", URL: bad.URL, Type: "rss", Category: "finance"},
	}

	items := a.Fetch(context.Background(), 24, 1)
	if len(items) != 1 {
		t.Fatalf("expected exactly the relevant item, got %d", len(items))
	}
	if items[0].Source != "good" {
		t.Fatalf("unexpected source %q", items[0].Source)
	}
	if items[0].Relevance == 0 {
		t.Fatal("kept item must be relevant")
	}
	if items[0].ID == "" {
		t.Fatal("item must carry a stable id")
	}
}

func TestFetchBackfillsFromCache(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`))
	}))
	defer empty.Close()

	cached := []models.NewsItem{
		{Title: "Кешована новина про інфляцію", Published: time.Now().Add(-30 * time.Hour)},
	}
	a := testAggregator(func() []models.NewsItem { return cached })
	a.sources = []config.NewsSource{{Name: "empty", URL: empty.URL, Type: "rss", Category: "finance"}}

	items := a.Fetch(context.Background(), 24, 1)
	if len(items) != 1 {
		t.Fatalf("expected 1 backfilled item, got %d", len(items))
	}
	if items[0].Title != cached[0].Title {
		t.Fatalf("unexpected item %q", items[0].Title)
	}
}

func TestFetchTotalFailureYieldsEmpty(t *testing.T) {
	a := testAggregator(nil)
	a.sources = []config.NewsSource{{Name: "dead", URL: "http://127.0.0.1:1", Type: "rss", Category: "finance"}}
	items := a.Fetch(context.Background(), 24, 0)
	if len(items) != 0 {
		t.Fatalf("expected empty batch, got %d", len(items))
	}
}
