// Package keymap maps key presses to calculator actions.
//
// An action is either a keypad label understood by engine.ParseEvent
// ("7", "+", "√x", "CE") or an application command such as "app.quit".
//
// # Layers
//
// A Registry holds keymaps in priority order. The built-in defaults have
// priority 0 and user overrides from the [keymap] configuration section have
// priority 100. Lookup takes the binding from the highest priority keymap
// that mentions the key; a binding with an empty action hides any lower
// binding for the same key.
//
// # Usage
//
//	reg := keymap.NewRegistry()
//	reg.Register(keymap.Default())
//	user, err := keymap.FromOverrides(cfg.Keymap)
//	...
//	reg.Register(user)
//
//	if b, ok := reg.Lookup(ev); ok {
//	    // dispatch b.Action
//	}
package keymap
