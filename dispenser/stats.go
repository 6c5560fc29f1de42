package dispenser

import (
	"github.com/sauceworks/sauced/saucedb"
	"github.com/sauceworks/sauced/stats"
)

// Counters returns the current usage counters.
func (d *Dispenser) Counters() saucedb.Counters {
	return d.stats.Snapshot()
}

// Export builds the stats payload for external consumers such as the QR
// endpoint.
func (d *Dispenser) Export() *stats.Export {
	return d.stats.Export(d.now())
}

// Version reports the build version the daemon was started with.
func (d *Dispenser) Version() string {
	return d.version
}
