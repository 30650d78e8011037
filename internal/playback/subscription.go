package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged   <-chan State
	CaptionChanged <-chan CaptionChange
	Error          <-chan *Error
	Done           <-chan struct{}

	// Internal write channels
	stateCh   chan State
	captionCh chan CaptionChange
	errorCh   chan *Error
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
// The state channel holds a single snapshot: only the latest one matters.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan State, 1),
		captionCh: make(chan CaptionChange, eventBufferSize),
		errorCh:   make(chan *Error, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.CaptionChanged = s.captionCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState replaces any unread snapshot with st (non-blocking).
func (s *Subscription) sendState(st State) {
	select {
	case s.stateCh <- st:
		return
	default:
	}
	// Buffer full, drain and send new value
	select {
	case <-s.stateCh:
	default:
	}
	select {
	case s.stateCh <- st:
	default:
	}
}

// sendCaption sends a caption change event (non-blocking).
func (s *Subscription) sendCaption(e CaptionChange) {
	select {
	case s.captionCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e *Error) {
	select {
	case s.errorCh <- e:
	default:
	}
}
