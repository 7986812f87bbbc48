package http

import (
	"net/http"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/handlers"
	"currency-advisor/backend-go/internal/store"
)

func NewRouter(cfg config.Config, st *store.Store, runner handlers.Runner) http.Handler {
	api := handlers.New(cfg, st, runner)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.HandleFunc("/api/v1/recommendations", api.Recommendations)
	mux.HandleFunc("/api/v1/history", api.History)
	mux.HandleFunc("/api/v1/statistics", api.Statistics)
	mux.HandleFunc("/api/v1/analyze", api.Analyze)

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
