package stats

import "time"

// Export is the stats payload handed to external consumers, most notably
// the QR code endpoint.
type Export struct {
	Served    uint64 `json:"served"`
	Tomato    uint64 `json:"tomato"`
	Mustard   uint64 `json:"mustard"`
	Timestamp int64  `json:"timestamp"`
}

// Export builds the payload from the current counters and the given time.
func (s *Store) Export(now time.Time) *Export {
	counters := s.Snapshot()

	return &Export{
		Served:    counters.Served,
		Tomato:    counters.TomatoServed,
		Mustard:   counters.MustardServed,
		Timestamp: now.Unix(),
	}
}
