package machine

import "sync"

// A Toggle records one pump output change.
type Toggle struct {
	Pump Pump
	On   bool
}

// MockMachine implements Machine without any hardware attached. Pump states
// are kept in memory and trigger events can be injected, which makes it
// useful for tests and for running the daemon on a development box.
type MockMachine struct {
	mtx            sync.Mutex
	states         map[Pump]bool
	toggles        []Toggle
	triggerClients map[uint32]chan Pump
	nextTriggerID  uint32
}

// Compile time check for protocol compatibility
var _ Machine = (*MockMachine)(nil)

func NewMockMachine() *MockMachine {
	return &MockMachine{
		states:         make(map[Pump]bool),
		triggerClients: make(map[uint32]chan Pump),
	}
}

func (m *MockMachine) Start() error {
	return nil
}

func (m *MockMachine) Stop() error {
	return nil
}

func (m *MockMachine) TogglePump(pump Pump, on bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.states[pump] = on
	m.toggles = append(m.toggles, Toggle{Pump: pump, On: on})
}

func (m *MockMachine) SubscribeTriggers() (*TriggerClient, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	triggers := make(chan Pump, 4)
	id := m.nextTriggerID
	m.nextTriggerID++
	m.triggerClients[id] = triggers

	return &TriggerClient{
		Triggers: triggers,
		cancel: func() error {
			m.mtx.Lock()
			defer m.mtx.Unlock()

			delete(m.triggerClients, id)

			return nil
		},
	}, nil
}

// Trigger injects a physical button press.
func (m *MockMachine) Trigger(pump Pump) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, triggers := range m.triggerClients {
		triggers <- pump
	}
}

// PumpOn reports the current state of a pump output.
func (m *MockMachine) PumpOn(pump Pump) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.states[pump]
}

// Toggles returns all recorded output changes in order.
func (m *MockMachine) Toggles() []Toggle {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	toggles := make([]Toggle, len(m.toggles))
	copy(toggles, m.toggles)

	return toggles
}
