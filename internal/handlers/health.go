package handlers

import (
	"net/http"
	"os"

	"currency-advisor/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	missing := []string{}
	if _, ok := a.store.LoadLatest(); !ok {
		missing = append(missing, "no_analysis_yet")
	}

	resp := models.HealthResponse{
		Ok:          len(missing) == 0,
		TsISO:       nowISO(),
		Service:     "backend-go",
		DataMissing: missing,
		Env: map[string]bool{
			"GROQ_API_KEY": os.Getenv("GROQ_API_KEY") != "",
			"REDIS_URL":    os.Getenv("REDIS_URL") != "",
			"DATA_DIR":     os.Getenv("DATA_DIR") != "",
		},
	}
	writeJSON(w, http.StatusOK, resp)
}
