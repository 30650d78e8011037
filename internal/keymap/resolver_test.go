package keymap

import (
	"slices"
	"testing"
)

var testBindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Help", ContextGlobal},
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionSeekForward, []string{"l", "right"}, "Skip forward", ContextPlayback},
	{ActionToggleCaptions, []string{"c"}, "Captions", ContextCaptions},
	{ActionCycleControls, []string{"c"}, "Controls", ContextNowPlaying},
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testBindings)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"l", ActionSeekForward},
		{"right", ActionSeekForward},
		{"unknown", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Resolve(tt.key); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolver_ResolveLimitedContexts(t *testing.T) {
	r := NewResolver(testBindings)

	if got := r.Resolve(" ", ContextGlobal); got != "" {
		t.Errorf("Resolve(space, global) = %q, want none", got)
	}
	if got := r.Resolve("?", ContextGlobal); got != ActionHelp {
		t.Errorf("Resolve(?, global) = %q, want %q", got, ActionHelp)
	}
	if got := r.Resolve("q", ContextPlayback); got != "" {
		t.Errorf("Resolve(q, playback) = %q, want none", got)
	}
}

func TestResolver_ContextOrderBreaksTies(t *testing.T) {
	r := NewResolver(testBindings)

	// AllContexts searches nowplaying before captions.
	if got := r.Resolve("c"); got != ActionCycleControls {
		t.Errorf("Resolve(c) = %q, want %q", got, ActionCycleControls)
	}
	if got := r.Resolve("c", ContextCaptions, ContextNowPlaying); got != ActionToggleCaptions {
		t.Errorf("Resolve(c, captions first) = %q, want %q", got, ActionToggleCaptions)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(testBindings)

	if got := r.KeysFor(ActionSeekForward); !slices.Equal(got, []string{"l", "right"}) {
		t.Errorf("KeysFor(seek_forward) = %v, want [l right]", got)
	}
	if got := r.KeysFor(ActionRestart); got != nil {
		t.Errorf("KeysFor(restart) = %v, want nil", got)
	}
}

func TestResolver_DeduplicatesKeys(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionPlayPause, []string{" ", "p"}, "Play/pause", ContextPlayback},
		{ActionPlayPause, []string{" ", "k"}, "Play/pause", ContextGlobal},
	})

	if got := r.KeysFor(ActionPlayPause); !slices.Equal(got, []string{" ", "p", "k"}) {
		t.Errorf("KeysFor(play_pause) = %q, want [\" \" p k]", got)
	}
}

func TestResolver_DefaultBindings(t *testing.T) {
	r := NewResolver(Bindings)

	for key, want := range map[string]Action{
		"q": ActionQuit,
		"m": ActionToggleSystemPlayer,
		" ": ActionPlayPause,
		"c": ActionToggleCaptions,
	} {
		if got := r.Resolve(key); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", key, got, want)
		}
	}
	if keys := r.KeysFor(ActionQuit); !slices.Contains(keys, "q") || !slices.Contains(keys, "ctrl+c") {
		t.Errorf("KeysFor(quit) = %v, want q and ctrl+c", keys)
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver(nil)

	if got := r.Resolve("q"); got != "" {
		t.Errorf("Resolve(q) = %q, want none", got)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor(quit) = %v, want nil", keys)
	}
}
