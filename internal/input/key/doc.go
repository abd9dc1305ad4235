// Package key provides key event types and parsing for calculator input.
//
//   - Key: identifies a keyboard key (named keys, keypad keys, or runes)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Key specifications are used in the [keymap] configuration section:
//
//   - Simple keys: "7", "c", "+", "Enter", "Escape"
//   - Keypad keys: "KP7", "KP+", "KPEnter"
//   - With modifiers: "Ctrl+C", "Ctrl++"
//   - Bracketed: "<C-c>", "<CR>", "<Esc>"
//
// Every event has one canonical spec (Event.Spec) which keymaps use as the
// lookup key. Characters are case-sensitive ("c" and "C" differ) except
// under Ctrl, where they are folded to lowercase.
package key
