package dispenser

import (
	"time"

	"github.com/sauceworks/sauced/machine"
	"github.com/sauceworks/sauced/stats"
)

type Config struct {
	Machine      machine.Machine
	Stats        *stats.Store
	DispenseTime time.Duration
	MinInterval  time.Duration
	ApiListen    string
	Logger       Logger
	Api          Api
	Version      string
}
