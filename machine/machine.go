package machine

// A Pump identifies one of the two condiment lines.
type Pump string

const (
	// PumpTomato drives the tomato sauce line.
	PumpTomato Pump = "tomato"
	// PumpMustard drives the mustard line.
	PumpMustard Pump = "mustard"
)

// Machine abstracts the dispenser hardware: one digital output per pump and
// optional physical trigger buttons.
type Machine interface {
	Start() error
	Stop() error
	TogglePump(pump Pump, on bool)
	SubscribeTriggers() (*TriggerClient, error)
}

// A TriggerClient receives physical trigger events until cancelled.
type TriggerClient struct {
	Triggers <-chan Pump
	cancel   func() error
}

func (c *TriggerClient) Cancel() error {
	return c.cancel()
}
