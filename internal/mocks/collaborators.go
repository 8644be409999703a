package mocks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seu-repo/genie-bridge/internal/domain"
	"github.com/seu-repo/genie-bridge/internal/ports"
)

// MockTokenizer is a mock implementation of ports.Tokenizer. Calls counts
// invocations so tests can assert a collaborator was never touched.
type MockTokenizer struct {
	TokenizeFunc func(ctx context.Context, language, text string) (*ports.TokenizeResult, error)
	Calls        int64
}

func (m *MockTokenizer) Tokenize(ctx context.Context, language, text string) (*ports.TokenizeResult, error) {
	atomic.AddInt64(&m.Calls, 1)
	if m.TokenizeFunc != nil {
		return m.TokenizeFunc(ctx, language, text)
	}
	return &ports.TokenizeResult{}, nil
}

func (m *MockTokenizer) CallCount() int64 {
	return atomic.LoadInt64(&m.Calls)
}

// MockLocationResolver is a mock implementation of ports.LocationResolver.
type MockLocationResolver struct {
	ResolveFunc func(ctx context.Context, language, text string) ([]ports.LocationCandidate, error)
	Calls       int64
}

func (m *MockLocationResolver) Resolve(ctx context.Context, language, text string) ([]ports.LocationCandidate, error) {
	atomic.AddInt64(&m.Calls, 1)
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, language, text)
	}
	return nil, nil
}

func (m *MockLocationResolver) CallCount() int64 {
	return atomic.LoadInt64(&m.Calls)
}

// MockExampleRepository is a mock implementation of ports.ExampleRepository.
type MockExampleRepository struct {
	GetByIntentNameFunc func(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error)
}

func (m *MockExampleRepository) GetByIntentName(ctx context.Context, language, device, name string) (*domain.CanonicalExample, error) {
	if m.GetByIntentNameFunc != nil {
		return m.GetByIntentNameFunc(ctx, language, device, name)
	}
	return nil, nil
}

// MockEngine is a mock implementation of ports.ConversationEngine.
type MockEngine struct {
	ExecuteFunc func(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error
}

func (m *MockEngine) Execute(ctx context.Context, conversationID string, user *domain.User, cmd *domain.CompiledCommand, sink ports.TurnSink) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, conversationID, user, cmd, sink)
	}
	return nil
}

// MockCache is an in-memory implementation of ports.Cache.
type MockCache struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := value.(string); ok {
		m.items[key] = s
	}
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MockCache) Ping() error { return nil }

func (m *MockCache) Close() error { return nil }
