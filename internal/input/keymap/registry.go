package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/pocketcalc/internal/input/key"
)

// Registry manages keymaps and resolves key events to bindings.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// layers are sorted by descending priority; registration order breaks ties,
	// later first.
	layers []*layer
}

type layer struct {
	keymap   *Keymap
	bindings map[string]Binding // canonical key spec -> binding
	seq      int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a keymap. A keymap with the same name replaces the old one.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("register: nil keymap")
	}

	l := &layer{keymap: km, bindings: make(map[string]Binding, len(km.Bindings))}
	for _, b := range km.Bindings {
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return fmt.Errorf("keymap %s: %w", km.Name, err)
		}
		if err := ValidateAction(b.Action); err != nil {
			return fmt.Errorf("keymap %s: %s: %w", km.Name, b.Keys, err)
		}
		l.bindings[ev.Spec()] = b
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seq := 0
	kept := r.layers[:0]
	for _, old := range r.layers {
		if old.keymap.Name != km.Name {
			kept = append(kept, old)
		}
		if old.seq >= seq {
			seq = old.seq + 1
		}
	}
	l.seq = seq
	r.layers = append(kept, l)
	sort.SliceStable(r.layers, func(i, j int) bool {
		if r.layers[i].keymap.Priority != r.layers[j].keymap.Priority {
			return r.layers[i].keymap.Priority > r.layers[j].keymap.Priority
		}
		return r.layers[i].seq > r.layers[j].seq
	})
	return nil
}

// Unregister removes the keymap with the given name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.layers[:0]
	for _, l := range r.layers {
		if l.keymap.Name != name {
			kept = append(kept, l)
		}
	}
	r.layers = kept
}

// Lookup returns the binding for ev. The second result is false when no
// keymap binds the key or the winning binding has an empty action.
func (r *Registry) Lookup(ev key.Event) (Binding, bool) {
	spec := ev.Spec()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.layers {
		if b, ok := l.bindings[spec]; ok {
			return b, b.Action != ""
		}
	}
	return Binding{}, false
}

// Bindings returns the effective bindings keyed by canonical key spec.
func (r *Registry) Bindings() map[string]Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Binding)
	for i := len(r.layers) - 1; i >= 0; i-- {
		for spec, b := range r.layers[i].bindings {
			if b.Action == "" {
				delete(out, spec)
				continue
			}
			out[spec] = b
		}
	}
	return out
}

// Names returns registered keymap names in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.layers))
	for i, l := range r.layers {
		names[i] = l.keymap.Name
	}
	return names
}
