package api

import (
	"net"
	"net/http"

	"github.com/go-errors/errors"
	"github.com/gorilla/mux"
	"github.com/sauceworks/sauced/dispenser"
	"github.com/sauceworks/sauced/saucelog"
)

type Config struct {
	Log      Logger
	SauceLog *saucelog.SauceLog
}

// Api is the local control surface the touch UI talks to.
type Api struct {
	dispenser *dispenser.Dispenser
	router    *mux.Router
	log       Logger
	sauceLog  *saucelog.SauceLog
}

// Compile time check for protocol compatibility
var _ dispenser.Api = (*Api)(nil)

func New(config *Config) *Api {
	api := &Api{
		router:   mux.NewRouter(),
		sauceLog: config.SauceLog,
	}

	if config.Log != nil {
		api.log = config.Log
	} else {
		api.log = noopLogger{}
	}

	api.router.Handle("/api/v1/status", api.handleGetStatus()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/dispenses", api.handlePostDispense()).Methods(http.MethodPost)
	api.router.Handle("/api/v1/counters", api.handleGetCounters()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/counters/qr", api.handleGetCountersQr()).Methods(http.MethodGet)
	api.router.Handle("/api/v1/logs", api.handleGetLogs()).Methods(http.MethodGet)

	return api
}

func (a *Api) SetDispenser(dispenser *dispenser.Dispenser) {
	a.dispenser = dispenser
}

func (a *Api) Serve(l net.Listener) error {
	if err := http.Serve(l, a.router); err != nil {
		return errors.Errorf("Unable to serve api: %v", err)
	}

	return nil
}
