package api

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sauceworks/sauced/dispenser"
	"github.com/sauceworks/sauced/machine"
	"github.com/sauceworks/sauced/saucedb"
	"github.com/sauceworks/sauced/saucelog"
	"github.com/sauceworks/sauced/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := saucedb.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	store := stats.NewStore(&stats.Config{DB: db})
	store.Load()

	a := New(&Config{
		SauceLog: saucelog.New(),
	})

	// NewDispenser wires itself into the api through SetDispenser.
	dispenser.NewDispenser(&dispenser.Config{
		Machine:      machine.NewMockMachine(),
		Stats:        store,
		DispenseTime: 50 * time.Millisecond,
		Api:          a,
		Version:      "test",
	})

	server := httptest.NewServer(a.router)
	t.Cleanup(server.Close)

	return server
}

func postDispense(t *testing.T, server *httptest.Server, target string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"target": target})
	require.NoError(t, err)

	res, err := http.Post(server.URL+"/api/v1/dispenses", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() {
		res.Body.Close()
	})

	return res
}

func getCounters(t *testing.T, server *httptest.Server) countersResponse {
	t.Helper()

	res, err := http.Get(server.URL + "/api/v1/counters")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	counters := countersResponse{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&counters))

	return counters
}

func TestGetStatus(t *testing.T) {
	server := newTestServer(t)

	res, err := http.Get(server.URL + "/api/v1/status")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	status := statusResponse{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	assert.Equal(t, "sauced", status.Name)
	assert.Equal(t, "test", status.Version)
}

func TestGetCountersStartsAtZero(t *testing.T) {
	server := newTestServer(t)

	counters := getCounters(t, server)
	assert.Equal(t, countersResponse{}, counters)
}

func TestPostDispense(t *testing.T) {
	server := newTestServer(t)

	res := postDispense(t, server, "tomato")
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	counters := getCounters(t, server)
	assert.Equal(t, uint64(1), counters.Served)
	assert.Equal(t, uint64(1), counters.TomatoServed)

	// immediately following request falls into the throttle window
	res = postDispense(t, server, "mustard")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)

	assert.Equal(t, counters, getCounters(t, server))
}

func TestPostDispenseBoth(t *testing.T) {
	server := newTestServer(t)

	res := postDispense(t, server, "both")
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	counters := getCounters(t, server)
	assert.Equal(t, uint64(2), counters.Served)
	assert.Equal(t, uint64(1), counters.TomatoServed)
	assert.Equal(t, uint64(1), counters.MustardServed)
}

func TestPostDispenseUnknownTarget(t *testing.T) {
	server := newTestServer(t)

	res := postDispense(t, server, "ketchup")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetCountersQr(t *testing.T) {
	server := newTestServer(t)

	res, err := http.Get(server.URL + "/api/v1/counters/qr")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/png", res.Header.Get("Content-Type"))

	payload, err := ioutil.ReadAll(res.Body)
	require.NoError(t, err)
	require.True(t, len(payload) > 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), payload[:8])
}

func TestGetLogs(t *testing.T) {
	server := newTestServer(t)

	res, err := http.Get(server.URL + "/api/v1/logs")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	logs := logsResponse{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&logs))
	assert.Empty(t, logs.Entries)
}
