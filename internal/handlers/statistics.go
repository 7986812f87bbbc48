package handlers

import "net/http"

// Statistics serves the 30-day roll-up over the history log.
func (a *API) Statistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Statistics())
}
