package power

import (
	"context"
	"sync"
)

// MockSource cycles through every percentage, charging for two of every
// seven readings. It stands in for the system source in debug mode.
type MockSource struct {
	mu      sync.Mutex
	counter int
}

var _ Source = &MockSource{}

// NewMockSource returns a mock source starting at counter start.
func NewMockSource(start int) *MockSource {
	return &MockSource{counter: start}
}

// Status advances the counter and returns the matching status.
func (m *MockSource) Status(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	st := Discharging
	if m.counter%7 <= 1 {
		st = Charging
	}
	return Status{
		IsPresent:  true,
		State:      st,
		Percentage: float64(m.counter % 101),
	}, nil
}
