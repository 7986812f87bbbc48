package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
	"currency-advisor/backend-go/internal/store"
)

type stubRunner struct {
	result models.AnalysisResult
	err    error
}

func (s stubRunner) Run(context.Context) (models.AnalysisResult, error) {
	return s.result, s.err
}

func newTestAPI(t *testing.T, runner Runner) (*API, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return New(config.Config{}, st, runner), st
}

func TestRecommendationsNotFoundBeforeFirstRun(t *testing.T) {
	api, _ := newTestAPI(t, stubRunner{})
	rec := httptest.NewRecorder()
	api.Recommendations(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before first run, got %d", rec.Code)
	}
}

func TestRecommendationsServesLatest(t *testing.T) {
	api, st := newTestAPI(t, stubRunner{})
	saved := models.AnalysisResult{
		AnalysisID: "run-1",
		LastUpdate: config.KyivNow().Format(time.RFC3339),
		Recommendations: []models.Recommendation{
			{Asset: "EUR", Action: models.ActionBuy, Confidence: 0.7},
		},
		TotalRecommendations: 1,
	}
	if err := st.SaveLatest(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	api.Recommendations(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got models.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AnalysisID != "run-1" || got.TotalRecommendations != 1 {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestHistoryClampsDaysParam(t *testing.T) {
	api, st := newTestAPI(t, stubRunner{})
	_ = st.AppendHistory(models.HistoryEntry{
		Timestamp:  config.KyivNow().Format(time.RFC3339),
		AnalysisID: "run-1",
	})

	rec := httptest.NewRecorder()
	api.History(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?days=999", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Days    int                   `json:"days"`
		Count   int                   `json:"count"`
		History []models.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Days != 30 {
		t.Fatalf("days must clamp to 30, got %d", body.Days)
	}
	if body.Count != 1 || len(body.History) != 1 {
		t.Fatalf("unexpected history %+v", body)
	}
}

func TestHistoryEmptyIsArray(t *testing.T) {
	api, _ := newTestAPI(t, stubRunner{})
	rec := httptest.NewRecorder()
	api.History(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["history"].([]any); !ok {
		t.Fatalf("history must be a JSON array, got %T", body["history"])
	}
}

func TestAnalyzeRequiresPost(t *testing.T) {
	api, _ := newTestAPI(t, stubRunner{})
	rec := httptest.NewRecorder()
	api.Analyze(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET, got %d", rec.Code)
	}
}

func TestAnalyzeRunsCycle(t *testing.T) {
	api, _ := newTestAPI(t, stubRunner{result: models.AnalysisResult{AnalysisID: "fresh"}})
	rec := httptest.NewRecorder()
	api.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	api, _ = newTestAPI(t, stubRunner{err: errors.New("boom")})
	rec = httptest.NewRecorder()
	api.Analyze(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on failure, got %d", rec.Code)
	}
}

func TestHealthReportsMissingData(t *testing.T) {
	api, st := newTestAPI(t, stubRunner{})
	rec := httptest.NewRecorder()
	api.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Ok || len(resp.DataMissing) != 1 {
		t.Fatalf("fresh install must report missing analysis: %+v", resp)
	}

	_ = st.SaveLatest(models.AnalysisResult{AnalysisID: "run-1", LastUpdate: config.KyivNow().Format(time.RFC3339)})
	rec = httptest.NewRecorder()
	api.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	resp = models.HealthResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Ok {
		t.Fatalf("health must be ok once a result exists: %+v", resp)
	}
}
