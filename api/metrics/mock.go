/* mock.go
 * Contains an in-memory Metrics implementation for tests
 */

package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	picks          map[string]int
	matchesAdded   int
	matchesEnded   int
	recomputations []float64
	lookupFailures int
	commands       map[string]int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		picks:    make(map[string]int),
		commands: make(map[string]int),
	}
}

func (m *Mock) IncPicks(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picks[outcome]++
}

func (m *Mock) IncMatchesAdded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesAdded++
}

func (m *Mock) IncMatchesEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesEnded++
}

func (m *Mock) ObserveRecompute(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputations = append(m.recomputations, duration)
}

func (m *Mock) IncLookupFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupFailures++
}

func (m *Mock) IncCommands(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[command]++
}

// Picks returns how many picks were counted with the given outcome.
func (m *Mock) Picks(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picks[outcome]
}

// MatchesAdded returns the number of times IncMatchesAdded was called.
func (m *Mock) MatchesAdded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesAdded
}

// MatchesEnded returns the number of times IncMatchesEnded was called.
func (m *Mock) MatchesEnded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesEnded
}

// Recomputations returns the number of times ObserveRecompute was called.
func (m *Mock) Recomputations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recomputations)
}

// LookupFailures returns the number of times IncLookupFailures was called.
func (m *Mock) LookupFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookupFailures
}

// Commands returns how many times the named command was counted.
func (m *Mock) Commands(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[command]
}
