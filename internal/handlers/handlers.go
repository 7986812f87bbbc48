package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
	"currency-advisor/backend-go/internal/store"
)

// Runner triggers one analysis cycle on demand.
type Runner interface {
	Run(ctx context.Context) (models.AnalysisResult, error)
}

type API struct {
	cfg    config.Config
	store  *store.Store
	runner Runner
}

func New(cfg config.Config, st *store.Store, runner Runner) *API {
	return &API{cfg: cfg, store: st, runner: runner}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func parseIntParam(v string, def int, min int, max int) int {
	if v == "" {
		return def
	}
	var out int
	_, err := fmt.Sscanf(v, "%d", &out)
	if err != nil {
		return def
	}
	if out < min {
		return min
	}
	if out > max {
		return max
	}
	return out
}

func nowISO() string {
	return config.KyivNow().Format(time.RFC3339)
}
