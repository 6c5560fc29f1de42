package dispenser

import (
	"net"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/sauceworks/sauced/machine"
	"github.com/sauceworks/sauced/stats"
)

// Hard safety bounds on a single pump activation. These are deliberately not
// configurable so a bad config cannot keep a pump running.
const (
	MinDispenseTime = 50 * time.Millisecond
	MaxDispenseTime = 6 * time.Second
)

// DefaultDispenseTime is used when the config leaves the duration unset.
const DefaultDispenseTime = 1500 * time.Millisecond

// DefaultMinInterval is the default throttle window between two accepted
// dispense requests.
const DefaultMinInterval = 1500 * time.Millisecond

// Dispenser gates and executes pump activations and keeps the usage
// counters current.
type Dispenser struct {
	machine      machine.Machine
	stats        *stats.Store
	dispenseTime time.Duration
	minInterval  time.Duration
	apiListen    string
	log          Logger
	api          Api
	version      string

	// requestMtx serializes the accept decision so the throttle window
	// holds between concurrent callers.
	requestMtx sync.Mutex

	// One lock per pump: a combined request runs both pumps in parallel
	// while overlapping activations of the same pump serialize.
	pumpMtx map[machine.Pump]*sync.Mutex

	apiListeners []net.Listener
	done         chan struct{}

	// overridable in tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewDispenser(config *Config) *Dispenser {
	d := &Dispenser{
		machine:      config.Machine,
		stats:        config.Stats,
		dispenseTime: config.DispenseTime,
		minInterval:  config.MinInterval,
		apiListen:    config.ApiListen,
		api:          config.Api,
		version:      config.Version,
		pumpMtx: map[machine.Pump]*sync.Mutex{
			machine.PumpTomato:  {},
			machine.PumpMustard: {},
		},
		done:  make(chan struct{}),
		now:   time.Now,
		sleep: time.Sleep,
	}

	if config.Logger != nil {
		d.log = config.Logger
	} else {
		d.log = noopLogger{}
	}

	if d.dispenseTime == 0 {
		d.dispenseTime = DefaultDispenseTime
	}

	if d.minInterval == 0 {
		d.minInterval = DefaultMinInterval
	}

	if d.api != nil {
		d.api.SetDispenser(d)
	}

	return d
}

// Run serves the api and feeds physical trigger events into Request. It
// blocks until Shutdown is called.
func (d *Dispenser) Run() error {
	if d.api != nil {
		lis, err := net.Listen("tcp", d.apiListen)
		if err != nil {
			return errors.Errorf("Api unable to listen on %v: %v", d.apiListen, err)
		}

		d.apiListeners = append(d.apiListeners, lis)

		go func() {
			if err := d.api.Serve(lis); err != nil {
				d.log.Errorf("Could not serve api: %v", err)
			}
		}()

		d.log.Infof("Serving api on %v", d.apiListen)
	}

	triggers, err := d.machine.SubscribeTriggers()
	if err != nil {
		return errors.Errorf("Could not subscribe to trigger events: %v", err)
	}

	defer func() {
		if err := triggers.Cancel(); err != nil {
			d.log.Errorf("Could not close trigger subscription: %v", err)
		}
	}()

	for {
		select {
		case pump := <-triggers.Triggers:
			// Physical buttons go through the same gate as the api.
			d.log.Infof("Trigger event for %v", pump)

			if !d.Request(Target(pump)) {
				d.log.Debugf("Trigger for %v rejected, too soon", pump)
			}

		case <-d.done:
			return nil
		}
	}
}

func (d *Dispenser) Shutdown() {
	for _, lis := range d.apiListeners {
		if err := lis.Close(); err != nil {
			d.log.Errorf("Could not close listener: %v", err)
		}
	}

	close(d.done)
}
