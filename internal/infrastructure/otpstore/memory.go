package otpstore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code     string
	deadline time.Time
}

// Memory is an in-process Store backed by a mutex-guarded map. Expired
// entries are dropped lazily on Get and Put.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// now is swappable in tests.
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Put(_ context.Context, email, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[email] = memoryEntry{code: code, deadline: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Get(_ context.Context, email string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[email]
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.deadline) {
		delete(m.entries, email)
		return "", false, nil
	}
	return e.code, true, nil
}

func (m *Memory) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, email)
	return nil
}

var _ Store = (*Memory)(nil)
