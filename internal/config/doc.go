// Package config loads pocketcalc settings.
//
// Settings are layered: built-in defaults, then a TOML file, then
// POCKETCALC_* environment variables. A file looks like:
//
//	[logging]
//	level = "info"
//	file = "/tmp/pocketcalc.log"
//
//	[engine]
//	leading_minus_as_sign = true
//
//	[theme]
//	equals = "#ff9500"
//
//	[keymap]
//	"p" = "+/-"
//	"q" = ""          # unbind
//
//	[script]
//	timeout = "2s"
//
//	[tape]
//	path = "~/.local/state/pocketcalc/tape.jsonl"
//
// Files are read through an afero.Fs so tests can use an in-memory
// filesystem.
package config
