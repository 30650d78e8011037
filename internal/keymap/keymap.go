package keymap

// Context groups bindings that are active together.
type Context string

const (
	ContextGlobal     Context = "global"
	ContextPlayback   Context = "playback"
	ContextNowPlaying Context = "nowplaying"
	ContextCaptions   Context = "captions"
)

// AllContexts is the default lookup order of a Resolver.
var AllContexts = []Context{ContextGlobal, ContextPlayback, ContextNowPlaying, ContextCaptions}

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     Context
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextPlayback},
	{ActionSeekForward, []string{"right", "l"}, "Skip forward", ContextPlayback},
	{ActionSeekBack, []string{"left", "h"}, "Skip backward", ContextPlayback},
	{ActionSeekForwardLong, []string{"shift+right", "L"}, "Seek +1m", ContextPlayback},
	{ActionSeekBackLong, []string{"shift+left", "H"}, "Seek -1m", ContextPlayback},
	{ActionNextTrack, []string{"pgdown", "n"}, "Next track", ContextPlayback},
	{ActionPrevTrack, []string{"pgup", "p"}, "Previous track", ContextPlayback},
	{ActionRestart, []string{"home", "0"}, "Restart", ContextPlayback},
	{ActionReload, []string{"ctrl+r"}, "Reload media", ContextPlayback},

	// Now playing
	{ActionToggleSystemPlayer, []string{"m"}, "Toggle system player controls", ContextNowPlaying},
	{ActionCycleControls, []string{"t"}, "Switch skip/track controls", ContextNowPlaying},
	{ActionIntervalUp, []string{"+", "="}, "Increase skip interval", ContextNowPlaying},
	{ActionIntervalDown, []string{"-"}, "Decrease skip interval", ContextNowPlaying},
	{ActionToggleAutoplay, []string{"a"}, "Toggle autoplay", ContextNowPlaying},

	// Captions
	{ActionToggleCaptions, []string{"c"}, "Show/hide captions", ContextCaptions},
}

// ByContext returns the bindings of context c in declaration order.
func ByContext(c Context) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == c {
			result = append(result, kb)
		}
	}
	return result
}
