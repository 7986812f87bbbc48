package handlers

import (
	"net/http"

	"currency-advisor/backend-go/internal/models"
)

// History returns past runs, filtered by a days query parameter (1..30,
// default 7).
func (a *API) History(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r.URL.Query().Get("days"), 7, 1, 30)
	history := a.store.LoadHistory(days)
	if history == nil {
		history = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":    days,
		"count":   len(history),
		"history": history,
	})
}
