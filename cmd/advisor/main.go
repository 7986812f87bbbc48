package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"currency-advisor/backend-go/internal/advisor"
	"currency-advisor/backend-go/internal/cache"
	"currency-advisor/backend-go/internal/config"
	internalhttp "currency-advisor/backend-go/internal/http"
	"currency-advisor/backend-go/internal/impact"
	"currency-advisor/backend-go/internal/markets"
	"currency-advisor/backend-go/internal/news"
	"currency-advisor/backend-go/internal/scoring"
	"currency-advisor/backend-go/internal/store"
)

func main() {
	once := flag.Bool("once", false, "run one analysis cycle, print the result and exit")
	flag.Parse()

	_ = godotenv.Load(
		".env",
		".env.local",
		"../.env",
		"../.env.local",
		"backend-go/.env",
		"backend-go/.env.local",
	)
	cfg := config.Load()
	for _, warning := range cfg.Validate() {
		log.Printf("config: %s", warning)
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	c := cache.New(cfg.RedisURL)

	sentiment := scoring.NewSentimentScorer(config.Keywords)
	relevance := scoring.NewRelevanceScorer(config.Keywords, config.Currencies, config.Crypto)
	aggregator := news.NewAggregator(cfg, sentiment, relevance, st.LoadNewsCache)
	collector := markets.NewCollector(cfg, c)
	analyzer := impact.NewAnalyzer(config.ImpactKeywords)

	var primary advisor.Generator
	if cfg.GroqAPIKey != "" {
		primary = advisor.NewAIGenerator(advisor.NewGroqClient(cfg), cfg)
	}
	engine := advisor.NewEngine(primary, advisor.NewRuleBased(cfg))
	adv := advisor.New(cfg, aggregator, collector, analyzer, engine, st)

	if *once {
		result, err := adv.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}

	go runSchedule(adv)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           internalhttp.NewRouter(cfg, st, adv),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("currency advisor listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// runSchedule fires one cycle at startup and then at the fixed Kyiv-time
// slots. Sleeping until the next slot keeps runs aligned even after clock
// drift or restarts.
func runSchedule(adv *advisor.Advisor) {
	if _, err := adv.Run(context.Background()); err != nil {
		log.Printf("scheduler: initial run: %v", err)
	}
	for {
		next := advisor.NextRun(config.KyivNow())
		log.Printf("scheduler: next analysis at %s", next.Format(time.RFC3339))
		time.Sleep(time.Until(next))
		if _, err := adv.Run(context.Background()); err != nil {
			log.Printf("scheduler: run: %v", err)
		}
	}
}
