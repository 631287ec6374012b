package llm

import (
	"context"
	"sync"

	"github.com/trigenys/apex-forge/internal/domain"
)

// MockGenerator is a scriptable domain.Generator for local mode and
// tests. Queued replies are consumed in order; when the queue is empty
// it falls back to a canned document so local runs keep working.
type MockGenerator struct {
	mu      sync.Mutex
	replies []string
	errs    []error

	// Gate, when set, is closed over by every call before returning.
	// Tests use it to hold a generation open and exercise concurrent
	// behavior.
	Gate func()

	// Calls records every instruction received, in order.
	Calls []string
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// QueueReply schedules the next reply.
func (m *MockGenerator) QueueReply(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, text)
	m.errs = append(m.errs, nil)
}

// QueueError schedules the next call to fail.
func (m *MockGenerator) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, "")
	m.errs = append(m.errs, err)
}

// CallCount reports how many generations ran so far. Safe to call while
// background goroutines are still generating.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockGenerator) next(instruction string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, instruction)
	var (
		reply string
		err   error
	)
	if len(m.replies) > 0 {
		reply, err = m.replies[0], m.errs[0]
		m.replies, m.errs = m.replies[1:], m.errs[1:]
	} else {
		reply = "## DRAFT\n- Generated locally without a live model.\n- Content: to be specified."
	}
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		gate()
	}
	return reply, err
}

func (m *MockGenerator) GenerateText(_ context.Context, instruction string, _ domain.GenerateOptions) (string, error) {
	return m.next(instruction)
}

func (m *MockGenerator) GenerateJSON(_ context.Context, instruction string, _ *domain.ResponseSchema, _ domain.GenerateOptions) ([]byte, error) {
	reply, err := m.next(instruction)
	if err != nil {
		return nil, err
	}
	return []byte(reply), nil
}
