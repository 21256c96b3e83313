package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	tournamentsCreated int
	tournamentsDeleted int
	transitions        map[string]int
	goalsRecorded      int
	authFailures       int
	persistDurations   []float64
	websocketClients   int
	clockTicks         int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		transitions:      make(map[string]int),
		persistDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTournamentsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsCreated++
}

func (m *Mock) IncTournamentsDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsDeleted++
}

func (m *Mock) IncMatchTransition(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[action]++
}

func (m *Mock) IncGoalsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goalsRecorded++
}

func (m *Mock) IncAuthFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authFailures++
}

func (m *Mock) ObservePersistDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistDurations = append(m.persistDurations, seconds)
}

func (m *Mock) SetWebsocketClients(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.websocketClients = n
}

func (m *Mock) IncClockTicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clockTicks++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// TournamentsCreated returns the number of times IncTournamentsCreated was called.
func (m *Mock) TournamentsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsCreated
}

// TournamentsDeleted returns the number of times IncTournamentsDeleted was called.
func (m *Mock) TournamentsDeleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsDeleted
}

// Transitions returns how many times the given lifecycle action was applied.
func (m *Mock) Transitions(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitions[action]
}

func (m *Mock) GoalsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goalsRecorded
}

func (m *Mock) AuthFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authFailures
}

// PersistCount returns the number of observed saves.
func (m *Mock) PersistCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.persistDurations)
}

func (m *Mock) WebsocketClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.websocketClients
}

func (m *Mock) ClockTicks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clockTicks
}

func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
