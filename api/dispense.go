package api

import (
	"encoding/json"
	"net/http"

	"github.com/sauceworks/sauced/dispenser"
)

type postDispenseRequest struct {
	Target string `json:"target"`
}

type postDispenseResponse struct {
	Target   string `json:"target"`
	Accepted bool   `json:"accepted"`
}

func (a *Api) handlePostDispense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := postDispenseRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		target, err := dispenser.ParseTarget(req.Target)
		if err != nil {
			a.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if !a.dispenser.Request(target) {
			a.jsonError(w, "Too soon since the last dispense", http.StatusTooManyRequests)
			return
		}

		a.jsonResponse(w, &postDispenseResponse{
			Target:   string(target),
			Accepted: true,
		}, http.StatusCreated)
	}
}
