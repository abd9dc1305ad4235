package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/pocketcalc/internal/input/key"
)

// Priorities of the built-in layers.
const (
	PriorityDefault = 0
	PriorityUser    = 100
)

// Keymap is a named collection of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence between keymaps. Higher wins.
	Priority int

	// Source indicates where this keymap was defined, e.g. "default" or "user".
	Source string
}

// NewKeymap creates a new empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Validate checks that every binding has a parseable key and a known action.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if _, err := key.Parse(b.Keys); err != nil {
			return fmt.Errorf("keymap %s: binding %d (%s): %w", k.Name, i, b.Keys, err)
		}
		if err := ValidateAction(b.Action); err != nil {
			return fmt.Errorf("keymap %s: binding %d (%s): %w", k.Name, i, b.Keys, err)
		}
	}
	return nil
}

// FromOverrides builds the user keymap from a key-spec to action table, as
// read from the [keymap] configuration section.
func FromOverrides(overrides map[string]string) (*Keymap, error) {
	km := NewKeymap("user").WithPriority(PriorityUser).WithSource("user")

	specs := make([]string, 0, len(overrides))
	for spec := range overrides {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		km.Add(spec, overrides[spec])
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}
