package nowplaying

import "time"

// Actions are the player operations remote commands can trigger.
// Nil fields leave the matching commands unbound.
type Actions struct {
	Play          func() error
	Pause         func() error
	Toggle        func() error
	SkipForward   func(time.Duration) error
	SkipBackward  func(time.Duration) error
	NextTrack     func() error
	PreviousTrack func() error
	SeekTo        func(time.Duration) error
}

// Bindings builds the command table for the given controls.
// The result depends only on its inputs, so rebuilding it is always safe.
func Bindings(controls Controls, a Actions) Table {
	t := Table{}

	bind := func(cmd Command, fn func() error) {
		if fn != nil {
			t[cmd] = func(Request) error { return fn() }
		}
	}

	bind(CommandPlay, a.Play)
	bind(CommandPause, a.Pause)
	bind(CommandTogglePlayPause, a.Toggle)

	switch controls {
	case ControlsTrack:
		bind(CommandNextTrack, a.NextTrack)
		bind(CommandPreviousTrack, a.PreviousTrack)
	default:
		if a.SkipForward != nil {
			t[CommandSkipForward] = func(r Request) error { return a.SkipForward(r.Interval) }
		}
		if a.SkipBackward != nil {
			t[CommandSkipBackward] = func(r Request) error { return a.SkipBackward(r.Interval) }
		}
	}

	if a.SeekTo != nil {
		t[CommandChangePosition] = func(r Request) error { return a.SeekTo(r.Position) }
	}
	return t
}
