package playback

import (
	"time"

	"github.com/llehouerou/mediakit/internal/caption"
	"github.com/llehouerou/mediakit/internal/nowplaying"
)

// Track is an item the player can load.
type Track struct {
	URL      string
	Metadata nowplaying.Metadata
	Captions *caption.Track

	// StartTime overrides the player's start time for this load when > 0.
	StartTime time.Duration
}

// Navigator supplies neighbouring tracks for next/previous commands.
type Navigator interface {
	Next() (Track, bool)
	Previous() (Track, bool)
	HasNext() bool
	HasPrevious() bool
	// Position returns the current index (-1 before the first track) and
	// the number of tracks.
	Position() (index, total int)
}
