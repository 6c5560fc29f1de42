package api

import (
	"encoding/json"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 400

type countersResponse struct {
	Served         uint64  `json:"served"`
	TomatoServed   uint64  `json:"tomatoServed"`
	MustardServed  uint64  `json:"mustardServed"`
	LastDispenseAt float64 `json:"lastDispenseAt"`
}

func (a *Api) handleGetCounters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters := a.dispenser.Counters()

		a.jsonResponse(w, &countersResponse{
			Served:         counters.Served,
			TomatoServed:   counters.TomatoServed,
			MustardServed:  counters.MustardServed,
			LastDispenseAt: counters.LastDispenseAt,
		}, http.StatusOK)
	}
}

func (a *Api) handleGetCountersQr() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := json.Marshal(a.dispenser.Export())
		if err != nil {
			a.jsonError(w, "Could not build stats payload", http.StatusInternalServerError)
			return
		}

		png, err := qrcode.Encode(string(payload), qrcode.Medium, qrImageSize)
		if err != nil {
			a.jsonError(w, "Could not render QR code", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")

		if _, err := w.Write(png); err != nil {
			a.log.Errorf("Could not respond with QR image: %v", err)
		}
	}
}
