package stats

import (
	"sync"
	"time"

	"github.com/sauceworks/sauced/machine"
	"github.com/sauceworks/sauced/saucedb"
)

type Config struct {
	DB     *saucedb.DB
	Logger Logger
}

// Store owns the process-wide dispense counters. It loads them once at
// startup, mutates them only through Record and persists the full record on
// every change.
type Store struct {
	db  *saucedb.DB
	log Logger

	mtx      sync.Mutex
	counters saucedb.Counters
}

func NewStore(config *Config) *Store {
	store := &Store{
		db: config.DB,
	}

	if config.Logger != nil {
		store.log = config.Logger
	} else {
		store.log = noopLogger{}
	}

	return store
}

// Load establishes the counters from the database. Missing or unreadable
// state falls back to zeroed counters so a fresh or damaged database never
// blocks startup.
func (s *Store) Load() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	counters, err := s.db.GetCounters()
	if err != nil {
		s.log.Warnf("Could not load counters, starting from zero: %v", err)
		s.counters = saucedb.Counters{}
		return
	}

	if counters == nil {
		s.log.Infof("No saved counters yet, starting from zero")
		s.counters = saucedb.Counters{}
		return
	}

	s.counters = *counters
}

// Record accounts one accepted dispense of a single pump. A combined request
// records once per pump, which keeps served equal to the sum of the two pump
// counters.
func (s *Store) Record(pump machine.Pump, now time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.counters.Served++

	switch pump {
	case machine.PumpTomato:
		s.counters.TomatoServed++
	case machine.PumpMustard:
		s.counters.MustardServed++
	}

	s.counters.LastDispenseAt = epochSeconds(now)

	counters := s.counters
	if err := s.db.SetCounters(&counters); err != nil {
		// losing one update is better than failing the dispense
		s.log.Errorf("Could not save counters: %v", err)
	}
}

// Snapshot returns the current counters by value.
func (s *Store) Snapshot() saucedb.Counters {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.counters
}

// LastDispense returns the time of the most recent accepted dispense, or the
// zero time when nothing has been dispensed yet.
func (s *Store) LastDispense() time.Time {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.counters.LastDispenseAt == 0 {
		return time.Time{}
	}

	return time.Unix(0, int64(s.counters.LastDispenseAt*float64(time.Second)))
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
