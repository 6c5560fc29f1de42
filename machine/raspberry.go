package machine

import (
	"sync"
	"time"

	"github.com/go-errors/errors"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// debounceInterval suppresses contact bounce on the physical buttons.
const debounceInterval = 50 * time.Millisecond

type DispenserMachineConfig struct {
	TomatoPumpPin    string
	MustardPumpPin   string
	TomatoButtonPin  string
	MustardButtonPin string
	Logger           Logger
}

// DispenserMachine drives the pumps and buttons through the Raspberry Pi
// GPIO header.
type DispenserMachine struct {
	config *DispenserMachineConfig
	log    Logger

	pumps map[Pump]gpio.PinIO

	triggerMtx     sync.Mutex
	triggerClients map[uint32]chan Pump
	nextTriggerID  uint32

	done chan struct{}
}

// Compile time check for protocol compatibility
var _ Machine = (*DispenserMachine)(nil)

func NewDispenserMachine(config *DispenserMachineConfig) *DispenserMachine {
	m := &DispenserMachine{
		config:         config,
		pumps:          make(map[Pump]gpio.PinIO),
		triggerClients: make(map[uint32]chan Pump),
		done:           make(chan struct{}),
	}

	if config.Logger != nil {
		m.log = config.Logger
	} else {
		m.log = noopLogger{}
	}

	return m
}

func (m *DispenserMachine) Start() error {
	if _, err := host.Init(); err != nil {
		return errors.Errorf("Could not initialize host: %v", err)
	}

	pumpPins := map[Pump]string{
		PumpTomato:  m.config.TomatoPumpPin,
		PumpMustard: m.config.MustardPumpPin,
	}

	for pump, name := range pumpPins {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return errors.Errorf("No pump pin named %v", name)
		}

		if err := pin.Out(gpio.Low); err != nil {
			return errors.Errorf("Could not set up pump pin %v: %v", name, err)
		}

		m.pumps[pump] = pin
	}

	buttonPins := map[Pump]string{
		PumpTomato:  m.config.TomatoButtonPin,
		PumpMustard: m.config.MustardButtonPin,
	}

	// Buttons are optional, so a missing or broken pin only logs a warning.
	for pump, name := range buttonPins {
		if name == "" {
			continue
		}

		pin := gpioreg.ByName(name)
		if pin == nil {
			m.log.Warnf("No button pin named %v, running without %v button", name, pump)
			continue
		}

		if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			m.log.Warnf("Could not set up button pin %v: %v", name, err)
			continue
		}

		go m.watchButton(pump, pin)
	}

	return nil
}

func (m *DispenserMachine) Stop() error {
	close(m.done)

	for pump, pin := range m.pumps {
		if err := pin.Out(gpio.Low); err != nil {
			m.log.Errorf("Could not switch off %v pump: %v", pump, err)
		}
	}

	return nil
}

func (m *DispenserMachine) TogglePump(pump Pump, on bool) {
	pin, ok := m.pumps[pump]
	if !ok {
		m.log.Errorf("Unknown pump %v", pump)
		return
	}

	level := gpio.Low
	if on {
		level = gpio.High
	}

	if err := pin.Out(level); err != nil {
		m.log.Errorf("Could not toggle %v pump: %v", pump, err)
	}
}

func (m *DispenserMachine) SubscribeTriggers() (*TriggerClient, error) {
	m.triggerMtx.Lock()
	defer m.triggerMtx.Unlock()

	triggers := make(chan Pump, 4)
	id := m.nextTriggerID
	m.nextTriggerID++
	m.triggerClients[id] = triggers

	return &TriggerClient{
		Triggers: triggers,
		cancel: func() error {
			m.triggerMtx.Lock()
			defer m.triggerMtx.Unlock()

			delete(m.triggerClients, id)

			return nil
		},
	}, nil
}

// watchButton forwards debounced press events of a single button.
func (m *DispenserMachine) watchButton(pump Pump, pin gpio.PinIO) {
	var lastPress time.Time

	for {
		select {
		case <-m.done:
			return
		default:
		}

		// Time out regularly so a stop is picked up.
		if !pin.WaitForEdge(1 * time.Second) {
			continue
		}

		if pin.Read() != gpio.Low {
			continue
		}

		now := time.Now()
		if now.Sub(lastPress) < debounceInterval {
			continue
		}
		lastPress = now

		m.notifyTrigger(pump)
	}
}

func (m *DispenserMachine) notifyTrigger(pump Pump) {
	m.triggerMtx.Lock()
	defer m.triggerMtx.Unlock()

	for _, triggers := range m.triggerClients {
		select {
		case triggers <- pump:
		default:
			m.log.Warnf("Dropping %v trigger, client not keeping up", pump)
		}
	}
}
