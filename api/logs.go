package api

import "net/http"

type logsResponse struct {
	Entries []string `json:"entries"`
}

func (a *Api) handleGetLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.sauceLog == nil {
			a.jsonError(w, "No log capture available", http.StatusNotFound)
			return
		}

		a.jsonResponse(w, &logsResponse{
			Entries: a.sauceLog.Get(),
		}, http.StatusOK)
	}
}
