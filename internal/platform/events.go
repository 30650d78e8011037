package platform

import "time"

// Status is the load status of the current item.
type Status int

const (
	StatusUnknown Status = iota
	StatusReadyToPlay
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusReadyToPlay:
		return "ReadyToPlay"
	case StatusFailed:
		return "Failed"
	default:
		return "Invalid"
	}
}

// Event is a notification from the engine.
type Event interface {
	engineEvent()
}

// StatusChanged is emitted when the current item's status changes.
// Err is set when Status is StatusFailed.
type StatusChanged struct {
	Status Status
	Err    error
}

// TimeChanged is emitted periodically while the playback position moves.
type TimeChanged struct {
	Time time.Duration
}

// BufferChanged is emitted when the buffered range or stall state changes.
type BufferChanged struct {
	Buffering  bool          // playback is stalled waiting for data
	Buffered   time.Duration // furthest position buffered ahead
	CacheSpeed int64         // bytes per second, 0 when unknown
}

// PauseChanged is emitted when the engine itself pauses or resumes.
type PauseChanged struct {
	Paused bool
}

// ItemEnded is emitted when playback reaches the end of the current item.
type ItemEnded struct{}

func (StatusChanged) engineEvent() {}
func (TimeChanged) engineEvent() {}
func (BufferChanged) engineEvent() {}
func (PauseChanged) engineEvent() {}
func (ItemEnded) engineEvent() {}
