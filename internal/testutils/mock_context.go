package testutils

import "sync"

// MockContext is an application context that records Load and Save calls.
type MockContext struct {
	mu        sync.Mutex
	loadCount int
	saveCount int

	// For testing error scenarios
	loadError error
	saveError error
}

// NewMockContext creates a mock context whose Load and Save succeed.
func NewMockContext() *MockContext {
	return &MockContext{}
}

// Load implements application.Context.
func (m *MockContext) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCount++
	return m.loadError
}

// Save implements application.Context.
func (m *MockContext) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCount++
	return m.saveError
}

// SetLoadError makes subsequent Load calls fail with err.
func (m *MockContext) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetSaveError makes subsequent Save calls fail with err.
func (m *MockContext) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// LoadCount returns the number of Load calls.
func (m *MockContext) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCount
}

// SaveCount returns the number of Save calls.
func (m *MockContext) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}
