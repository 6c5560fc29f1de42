package api

import "net/http"

type statusResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (a *Api) handleGetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.jsonResponse(w, &statusResponse{
			Name:    "sauced",
			Version: a.dispenser.Version(),
		}, http.StatusOK)
	}
}
