package saucedb

var (
	statsBucket = []byte("stats")
	countersKey = []byte("counters")
)

// Counters are the running dispense totals. LastDispenseAt holds epoch
// seconds of the most recent accepted dispense.
type Counters struct {
	Served         uint64  `json:"served"`
	TomatoServed   uint64  `json:"tomatoServed"`
	MustardServed  uint64  `json:"mustardServed"`
	LastDispenseAt float64 `json:"lastDispenseAt"`
}

// SetCounters overwrites the stored counters record in full.
func (db *DB) SetCounters(counters *Counters) error {
	return db.setJSON(statsBucket, countersKey, counters)
}

// GetCounters returns the stored counters, or nil when nothing has been
// saved yet.
func (db *DB) GetCounters() (*Counters, error) {
	counters := &Counters{}

	found, err := db.getJSON(statsBucket, countersKey, counters)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return counters, nil
}
