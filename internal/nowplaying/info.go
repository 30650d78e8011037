package nowplaying

import "time"

// PlaybackStatus is the status shown on the surface.
type PlaybackStatus int

const (
	StatusStopped PlaybackStatus = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Metadata describes the current item for display.
type Metadata struct {
	Title      string
	Artist     string
	Album      string
	ArtworkURL string
}

// Info is the full now-playing state mirrored to the surface.
type Info struct {
	Metadata
	URL      string
	Duration time.Duration
	Elapsed  time.Duration
	Rate     float64
	Status   PlaybackStatus

	// HasNext and HasPrevious report whether track commands have a target.
	HasNext     bool
	HasPrevious bool
}

// Center is the platform now-playing surface.
type Center interface {
	// SetHandlers replaces every registered handler with t. An empty or nil
	// table removes them all.
	SetHandlers(t Table)

	// SetPreferredSkipInterval sets the interval the surface passes to skip commands.
	SetPreferredSkipInterval(d time.Duration)

	// SetInfo publishes now-playing info. Nil clears it.
	SetInfo(info *Info)
}
