package playback

import (
	"errors"
	"fmt"

	"github.com/llehouerou/mediakit/internal/caption"
)

var (
	// ErrNoTrack is returned by NextTrack/PreviousTrack when there is nowhere to go.
	ErrNoTrack = errors.New("no track to play")
	// ErrClosed is returned by operations on a closed player.
	ErrClosed = errors.New("player closed")
)

// ErrorKind classifies playback failures.
type ErrorKind int

const (
	// ErrorAsset means the item could not be opened or its duration loaded.
	ErrorAsset ErrorKind = iota
	// ErrorStatus means the engine reported the item as failed.
	ErrorStatus
	// ErrorSeek means seeking to the start time failed.
	ErrorSeek
	// ErrorPreroll means the item could not be primed for playback.
	ErrorPreroll
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorAsset:
		return "asset"
	case ErrorStatus:
		return "status"
	case ErrorSeek:
		return "seek"
	case ErrorPreroll:
		return "preroll"
	default:
		return "unknown"
	}
}

// Error is the failure surfaced in State.Err.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CaptionChange is emitted when the active caption changes. Caption is nil
// when no caption covers the current time.
type CaptionChange struct {
	Caption *caption.Caption
}
