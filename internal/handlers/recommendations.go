package handlers

import "net/http"

// Recommendations serves the latest persisted analysis document verbatim.
func (a *API) Recommendations(w http.ResponseWriter, r *http.Request) {
	result, ok := a.store.LoadLatest()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis available yet")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
