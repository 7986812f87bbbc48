package handlers

import "net/http"

// Analyze triggers one analysis cycle on demand and returns the fresh
// result. Regular runs happen on the scheduler; this endpoint exists for
// manual refreshes.
func (a *API) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	result, err := a.runner.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
