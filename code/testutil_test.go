package code

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/tableqa/frame"
)

func testDataset() *frame.Frame {
	return frame.MustNew(
		frame.Strings("region", []string{"north", "south"}),
		frame.Ints("units", []int64{3, 5}),
	)
}

func testConfig(engine Engine) Config {
	return Config{
		Engine:    engine,
		Dataset:   testDataset(),
		AllowList: []string{"strings", "tableqa/frame"},
	}
}

// mockEngine implements Engine for testing.
type mockEngine struct {
	mu sync.Mutex

	// Configurable returns
	executeResult ExecuteResult
	executeErr    error
	executeFn     func(ctx context.Context, ns Namespace) (ExecuteResult, error)

	// Call tracking
	executeCalls []executeCall
}

type executeCall struct {
	ctx    context.Context
	params ExecuteParams
	ns     Namespace
}

func (m *mockEngine) Execute(ctx context.Context, params ExecuteParams, ns Namespace) (ExecuteResult, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, executeCall{ctx, params, ns})
	fn := m.executeFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, ns)
	}
	return m.executeResult, m.executeErr
}

// mockLogger implements Logger for testing.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
