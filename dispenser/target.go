package dispenser

import (
	"github.com/go-errors/errors"
	"github.com/sauceworks/sauced/machine"
)

// A Target names what a dispense request applies to: one pump or both.
type Target string

const (
	TargetTomato  Target = "tomato"
	TargetMustard Target = "mustard"
	TargetBoth    Target = "both"
)

// ParseTarget validates a target string coming from an external caller.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetTomato, TargetMustard, TargetBoth:
		return Target(s), nil
	default:
		return "", errors.Errorf("Unknown dispense target %v", s)
	}
}

// Pumps lists the physical pumps a target covers.
func (t Target) Pumps() []machine.Pump {
	switch t {
	case TargetTomato:
		return []machine.Pump{machine.PumpTomato}
	case TargetMustard:
		return []machine.Pump{machine.PumpMustard}
	case TargetBoth:
		return []machine.Pump{machine.PumpTomato, machine.PumpMustard}
	default:
		return nil
	}
}
