package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClient for testing
type MockChatClient struct {
	// Mock return values
	Reply string
	Err   error

	// SendFunc, when set, overrides Reply/Err
	SendFunc func(ctx context.Context, text string) (string, error)

	// Call counters/recorders
	mu          sync.Mutex
	calls       int
	lastMessage string
}

// Ensure MockChatClient implements ChatClient
var _ ChatClient = (*MockChatClient)(nil)

// SendMessage records the call and returns the configured result
func (m *MockChatClient) SendMessage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastMessage = text
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text)
	}
	return m.Reply, m.Err
}

// Calls returns the number of SendMessage calls
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastMessage returns the text of the most recent call
func (m *MockChatClient) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessage
}
