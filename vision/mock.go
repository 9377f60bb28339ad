package vision

import (
	"context"
	"fmt"
	"sync"
)

// MockService is a fixture-driven Service for tests and for the
// VisionProvider="mock" configuration mode, which lets the oracle run
// end-to-end without an Anthropic API key (e.g. in CI).
type MockService struct {
	mu        sync.Mutex
	responses []string
	calls     int
	Err       error
}

// NewMockService returns a MockService that yields responses in order,
// repeating the last one once exhausted.
func NewMockService(responses ...string) *MockService {
	return &MockService{responses: responses}
}

func (m *MockService) Analyze(ctx context.Context, image []byte, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("vision: mock service has no fixture responses configured")
	}
	idx := m.calls
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.calls++
	return m.responses[idx], nil
}

// Calls reports how many times Analyze was invoked.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
