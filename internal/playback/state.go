// internal/playback/state.go
package playback

import (
	"time"

	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/nowplaying"
)

// State is a read-only snapshot of everything the player publishes.
type State struct {
	URL            string
	Progress       float64 // Time / Duration, 0 when the duration is unknown
	Time           time.Duration
	Duration       time.Duration
	Paused         bool
	Buffering      bool
	BufferTime     time.Duration
	BufferProgress float64 // BufferTime / Duration
	CacheSpeed     int64   // bytes per second reported by the engine
	Ended          bool
	Caption        *caption.Caption
	Err            *Error
}

// IsLoaded returns true once an item has been set.
func (s State) IsLoaded() bool {
	return s.URL != ""
}

// Status maps the snapshot to a now-playing status.
func (s State) Status() nowplaying.PlaybackStatus {
	switch {
	case !s.IsLoaded() || s.Err != nil:
		return nowplaying.StatusStopped
	case s.Paused:
		return nowplaying.StatusPaused
	default:
		return nowplaying.StatusPlaying
	}
}

// derive recomputes the ratio fields from times.
func (s *State) derive() {
	if s.Duration <= 0 {
		s.Progress = 0
		s.BufferProgress = 0
		return
	}
	s.Progress = ratio(s.Time, s.Duration)
	s.BufferProgress = ratio(s.BufferTime, s.Duration)
}

func ratio(part, whole time.Duration) float64 {
	r := float64(part) / float64(whole)
	return min(max(r, 0), 1)
}
