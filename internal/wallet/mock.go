package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MockResponse is a canned reply for one MockProvider request.
// Result is marshalled to JSON; Delay holds the reply back unless the
// request context ends first.
type MockResponse struct {
	Result any
	Err    error
	Delay  time.Duration
}

// MockProvider is a deterministic Provider for testing. Responses are
// queued per method and served in FIFO order; all requests are recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses map[string][]MockResponse
	Calls     []RequestArgs
}

// NewMockProvider creates an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{responses: make(map[string][]MockResponse)}
}

// On queues resp for method and returns m for chaining.
func (m *MockProvider) On(method string, resp MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[method] = append(m.responses[method], resp)
	return m
}

// Request returns the next canned response for args.Method, or a
// method-not-found ProviderError when the queue is empty.
func (m *MockProvider) Request(ctx context.Context, args RequestArgs) (json.RawMessage, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, args)
	queue := m.responses[args.Method]
	if len(queue) == 0 {
		m.mu.Unlock()
		return nil, &ProviderError{Code: CodeMethodNotFound, Message: fmt.Sprintf("no mock response for %s", args.Method)}
	}
	resp := queue[0]
	m.responses[args.Method] = queue[1:]
	m.mu.Unlock()

	if resp.Delay > 0 {
		timer := time.NewTimer(resp.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (m *MockProvider) Name() string { return "mock" }

// CallCount returns the number of requests made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Methods returns the requested methods in call order.
func (m *MockProvider) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Method
	}
	return out
}
