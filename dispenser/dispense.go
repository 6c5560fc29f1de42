package dispenser

import (
	"time"

	"github.com/sauceworks/sauced/machine"
)

// Request asks for a dispense of the given target. It returns false when
// the request falls inside the throttle window; a rejected request is
// dropped and nothing is recorded. On acceptance the counters are updated
// before Request returns while the pumps run in the background.
func (d *Dispenser) Request(target Target) bool {
	pumps := target.Pumps()
	if len(pumps) == 0 {
		d.log.Warnf("Ignoring request for unknown target %v", target)
		return false
	}

	d.requestMtx.Lock()
	defer d.requestMtx.Unlock()

	now := d.now()

	// One gate per request, shared between both pumps.
	if now.Sub(d.stats.LastDispense()) < d.minInterval {
		d.log.Debugf("Rejecting %v request, too soon", target)
		return false
	}

	duration := clampDispenseTime(d.dispenseTime)

	for _, pump := range pumps {
		d.stats.Record(pump, now)

		go d.runPump(pump, duration)
	}

	d.log.Infof("Dispensing %v for %v", target, duration)

	return true
}

// runPump holds a single pump on for the given duration. The pump's lock
// keeps overlapping activations from fighting over the output.
func (d *Dispenser) runPump(pump machine.Pump, duration time.Duration) {
	mtx := d.pumpMtx[pump]

	mtx.Lock()
	defer mtx.Unlock()

	d.machine.TogglePump(pump, true)
	d.sleep(duration)
	d.machine.TogglePump(pump, false)
}

func clampDispenseTime(duration time.Duration) time.Duration {
	if duration < MinDispenseTime {
		return MinDispenseTime
	}

	if duration > MaxDispenseTime {
		return MaxDispenseTime
	}

	return duration
}
