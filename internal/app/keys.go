package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/mediakit/internal/keymap"
)

// helpContexts lists the binding contexts in the order shown by the help view.
var helpContexts = []keymap.Context{
	keymap.ContextPlayback,
	keymap.ContextNowPlaying,
	keymap.ContextCaptions,
	keymap.ContextGlobal,
}

// helpKeys adapts keymap.Bindings to the bubbles help.KeyMap interface.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func newHelpKeys(r *keymap.Resolver) helpKeys {
	var k helpKeys
	for _, ctx := range helpContexts {
		var column []key.Binding
		for _, b := range keymap.ByContext(ctx) {
			column = append(column, binding(r, b))
		}
		k.full = append(k.full, column)
	}
	for _, a := range []keymap.Action{keymap.ActionPlayPause, keymap.ActionSeekBack, keymap.ActionSeekForward, keymap.ActionHelp, keymap.ActionQuit} {
		for _, b := range keymap.Bindings {
			if b.Action == a {
				k.short = append(k.short, binding(r, b))
				break
			}
		}
	}
	return k
}

func binding(r *keymap.Resolver, b keymap.Binding) key.Binding {
	keys := r.KeysFor(b.Action)
	label := ""
	if len(keys) > 0 {
		label = keyLabel(keys[0])
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(label, b.Description),
	)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k helpKeys) ShortHelp() []key.Binding { return k.short }

// FullHelp implements help.KeyMap.
func (k helpKeys) FullHelp() [][]key.Binding { return k.full }
