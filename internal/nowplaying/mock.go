package nowplaying

import (
	"sync"
	"time"
)

// Mock is a test double for Center that records what was pushed to it.
type Mock struct {
	mu        sync.Mutex
	handlers  Table
	sets      int
	intervals []time.Duration
	infos     []*Info
}

// NewMock creates an empty mock center.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SetHandlers(t Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.handlers = Table{}
	for cmd, h := range t {
		m.handlers[cmd] = h
	}
}

func (m *Mock) SetPreferredSkipInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intervals = append(m.intervals, d)
}

func (m *Mock) SetInfo(info *Info) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if info != nil {
		cp := *info
		info = &cp
	}
	m.infos = append(m.infos, info)
}

// Test helpers

// Commands returns the currently registered commands.
func (m *Mock) Commands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handlers.Commands()
}

// Trigger invokes a registered handler the way the platform would.
// The handler runs outside the mock's lock.
func (m *Mock) Trigger(req Request) error {
	m.mu.Lock()
	t := m.handlers
	m.mu.Unlock()
	return t.Dispatch(req)
}

// SetHandlersCalls returns how many times the handler table was replaced.
func (m *Mock) SetHandlersCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// Intervals returns every preferred skip interval pushed, in order.
func (m *Mock) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.intervals...)
}

// LastInfo returns the last info pushed (nil if cleared or never set).
func (m *Mock) LastInfo() *Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.infos) == 0 {
		return nil
	}
	return m.infos[len(m.infos)-1]
}

// InfoCalls returns how many times SetInfo was called.
func (m *Mock) InfoCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.infos)
}

// Verify Mock implements Center at compile time.
var _ Center = (*Mock)(nil)
