// Package playlist holds the tracks next/previous commands move between.
package playlist

import (
	"sync"

	"github.com/llehouerou/mediakit/internal/playback"
)

// Queue is an ordered list of tracks with a current position.
// It is safe for concurrent use: remote commands arrive on other goroutines.
type Queue struct {
	mu      sync.Mutex
	tracks  []playback.Track
	current int // -1 before the first track
}

// NewQueue creates a queue holding tracks, positioned before the first one.
func NewQueue(tracks ...playback.Track) *Queue {
	return &Queue{
		tracks:  append([]playback.Track(nil), tracks...),
		current: -1,
	}
}

// Next advances to the next track and returns it.
func (q *Queue) Next() (playback.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current >= len(q.tracks)-1 {
		return playback.Track{}, false
	}
	q.current++
	return q.tracks[q.current], true
}

// Previous moves back one track and returns it.
func (q *Queue) Previous() (playback.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current <= 0 {
		return playback.Track{}, false
	}
	q.current--
	return q.tracks[q.current], true
}

// HasNext reports whether there is a track after the current one.
func (q *Queue) HasNext() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current < len(q.tracks)-1
}

// HasPrevious reports whether there is a track before the current one.
func (q *Queue) HasPrevious() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current > 0
}

// Position returns the current index and the number of tracks.
func (q *Queue) Position() (index, total int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current, len(q.tracks)
}

var _ playback.Navigator = (*Queue)(nil)
