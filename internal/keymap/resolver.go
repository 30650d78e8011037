package keymap

import "slices"

// Resolver maps key strings to actions. Keys are looked up per context, so a
// caller can limit which groups of bindings are live, e.g. only global keys
// over an overlay.
type Resolver struct {
	byContext map[Context]map[string]Action
	byAction  map[Action][]string
}

// NewResolver indexes bindings by context and by action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byContext: make(map[Context]map[string]Action),
		byAction:  make(map[Action][]string),
	}
	for _, b := range bindings {
		keys := r.byContext[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.byContext[b.Context] = keys
		}
		for _, k := range b.Keys {
			keys[k] = b.Action
			if !slices.Contains(r.byAction[b.Action], k) {
				r.byAction[b.Action] = append(r.byAction[b.Action], k)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key in the first of contexts that
// binds it, or "" if none does. With no contexts AllContexts is searched.
func (r *Resolver) Resolve(key string, contexts ...Context) Action {
	if len(contexts) == 0 {
		contexts = AllContexts
	}
	for _, c := range contexts {
		if a, ok := r.byContext[c][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
