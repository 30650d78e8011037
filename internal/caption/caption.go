// Package caption provides timed text tracks and their lookup by playback time.
package caption

import (
	"sort"
	"time"
)

// Caption is a single timed text entry, active over [Start, End).
type Caption struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Contains reports whether t falls inside the caption's range.
func (c Caption) Contains(t time.Duration) bool {
	return c.Start <= t && t < c.End
}

// Track is an immutable, start-ordered set of captions.
//
// Overlapping captions are allowed. When several contain the same time, the
// one with the latest start wins; among equal starts the later input entry wins.
type Track struct {
	captions []Caption
	maxEnd   []time.Duration // maxEnd[i] is the latest End among captions[:i+1]
}

// NewTrack builds a track from an unordered caption list.
// Captions whose End is not after Start are dropped since they can never be active.
func NewTrack(captions []Caption) *Track {
	kept := make([]Caption, 0, len(captions))
	for _, c := range captions {
		if c.End > c.Start {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})
	maxEnd := make([]time.Duration, len(kept))
	for i, c := range kept {
		maxEnd[i] = c.End
		if i > 0 && maxEnd[i-1] > c.End {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return &Track{captions: kept, maxEnd: maxEnd}
}

// Len returns the number of captions in the track.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.captions)
}

// Captions returns a copy of the ordered captions.
func (t *Track) Captions() []Caption {
	if t == nil {
		return nil
	}
	out := make([]Caption, len(t.captions))
	copy(out, t.captions)
	return out
}

// Caption returns the caption at index i.
func (t *Track) Caption(i int) Caption {
	return t.captions[i]
}

// At returns the index of the caption active at pos, or -1 if none is.
func (t *Track) At(pos time.Duration) int {
	if t.Len() == 0 {
		return -1
	}

	// First caption starting after pos; everything before it is a candidate.
	n := sort.Search(len(t.captions), func(i int) bool {
		return t.captions[i].Start > pos
	})
	for i := n - 1; i >= 0 && t.maxEnd[i] > pos; i-- {
		if t.captions[i].End > pos {
			return i
		}
	}
	return -1
}
