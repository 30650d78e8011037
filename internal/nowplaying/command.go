// Package nowplaying binds playback actions to the system now-playing surface.
//
// The surface (lock screen, desktop media widget, MPRIS) is a Center. The
// Controller decides which logical commands are bound, rebuilding the whole
// command table from configuration each time instead of patching it.
package nowplaying

import (
	"fmt"
	"strings"
	"time"
)

// Command is a logical remote control routed to the app by the platform.
type Command int

const (
	CommandPlay Command = iota
	CommandPause
	CommandTogglePlayPause
	CommandSkipForward
	CommandSkipBackward
	CommandNextTrack
	CommandPreviousTrack
	CommandChangePosition
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "Play"
	case CommandPause:
		return "Pause"
	case CommandTogglePlayPause:
		return "TogglePlayPause"
	case CommandSkipForward:
		return "SkipForward"
	case CommandSkipBackward:
		return "SkipBackward"
	case CommandNextTrack:
		return "NextTrack"
	case CommandPreviousTrack:
		return "PreviousTrack"
	case CommandChangePosition:
		return "ChangePosition"
	default:
		return "Unknown"
	}
}

// Controls selects what the previous/forward buttons do.
type Controls int

const (
	// ControlsSkip makes previous/forward skip by the seek interval.
	ControlsSkip Controls = iota
	// ControlsTrack makes previous/forward move to the previous/next track.
	ControlsTrack
)

// String returns the config name of the controls.
func (c Controls) String() string {
	switch c {
	case ControlsSkip:
		return "skip"
	case ControlsTrack:
		return "track"
	default:
		return "unknown"
	}
}

// ParseControls parses "skip" or "track". Empty means skip.
func ParseControls(s string) (Controls, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip", "interval":
		return ControlsSkip, nil
	case "track", "tracks":
		return ControlsTrack, nil
	default:
		return ControlsSkip, fmt.Errorf("unknown now-playing controls %q", s)
	}
}

// Request carries the arguments of a command invocation.
type Request struct {
	Command  Command
	Interval time.Duration // skip commands
	Position time.Duration // ChangePosition
}

// Handler runs a command.
type Handler func(Request) error

// Table maps each bound command to exactly one handler.
type Table map[Command]Handler

// Has reports whether cmd is bound.
func (t Table) Has(cmd Command) bool {
	_, ok := t[cmd]
	return ok
}

// Commands returns the bound commands in declaration order.
func (t Table) Commands() []Command {
	var out []Command
	for c := CommandPlay; c <= CommandChangePosition; c++ {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Dispatch runs the handler for req.Command. Unbound commands are ignored.
func (t Table) Dispatch(req Request) error {
	h, ok := t[req.Command]
	if !ok {
		return nil
	}
	return h(req)
}
