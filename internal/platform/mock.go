package platform

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Engine. Events are injected with Emit.
type Mock struct {
	mu sync.Mutex

	events    chan Event
	closed    bool
	current   string
	position  time.Duration
	durations map[string]time.Duration

	replaceErr  error
	durationErr error
	seekErr     error
	prerollErr  error
	audioErr    error

	prerollGate        chan struct{}
	prerollHonorCancel bool

	replaceCalls []string
	seekCalls    []time.Duration
	prerollCalls []float64
	playCalls    int
	pauseCalls   int
	sessions     []AudioSession
}

// NewMock creates a mock engine with a buffered event channel.
func NewMock() *Mock {
	return &Mock{
		events:    make(chan Event, 64),
		durations: make(map[string]time.Duration),
	}
}

func (m *Mock) Replace(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceCalls = append(m.replaceCalls, url)
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.current = url
	m.position = 0
	return nil
}

func (m *Mock) Duration(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.durationErr != nil {
		return 0, m.durationErr
	}
	return m.durations[m.current], nil
}

func (m *Mock) Seek(_ context.Context, to time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, to)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = to
	return nil
}

func (m *Mock) Preroll(ctx context.Context, rate float64) error {
	m.mu.Lock()
	m.prerollCalls = append(m.prerollCalls, rate)
	gate, honor := m.prerollGate, m.prerollHonorCancel
	m.prerollGate = nil
	err := m.prerollErr
	m.mu.Unlock()

	if gate != nil {
		if honor {
			select {
			case <-gate:
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			<-gate
		}
	}
	return err
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	return nil
}

func (m *Mock) Time() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) ConfigureAudioSession(s AudioSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return m.audioErr
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

// Emit delivers an event to the adapter. Ignored after Close.
func (m *Mock) Emit(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.events <- ev
}

func (m *Mock) SetDuration(url string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[url] = d
}

func (m *Mock) SetTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetReplaceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaceErr = err
}

func (m *Mock) SetDurationError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationErr = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

func (m *Mock) SetPrerollError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prerollErr = err
}

func (m *Mock) SetAudioSessionError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audioErr = err
}

// BlockPreroll makes the next Preroll call wait until release is called.
// With honorCancel the call also returns when its context is cancelled.
func (m *Mock) BlockPreroll(honorCancel bool) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.prerollGate = gate
	m.prerollHonorCancel = honorCancel
	m.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (m *Mock) ReplaceCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.replaceCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PrerollCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.prerollCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) AudioSessions() []AudioSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AudioSession(nil), m.sessions...)
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
