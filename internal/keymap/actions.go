// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"      // by the skip interval
	ActionSeekBack        Action = "seek_back"         // by the skip interval
	ActionSeekForwardLong Action = "seek_forward_long" // by one minute
	ActionSeekBackLong    Action = "seek_back_long"
	ActionRestart         Action = "restart"
	ActionReload          Action = "reload" // reload the current url

	// Now-playing settings
	ActionToggleSystemPlayer Action = "toggle_system_player"
	ActionCycleControls      Action = "cycle_controls"
	ActionIntervalUp         Action = "interval_up"
	ActionIntervalDown       Action = "interval_down"
	ActionToggleAutoplay     Action = "toggle_autoplay"

	// Caption actions
	ActionToggleCaptions Action = "toggle_captions"
)
