// Package config loads autobullet settings.
//
// Configuration comes from, lowest priority first:
//
//   - built-in defaults (Default)
//   - a TOML or YAML file, chosen by extension, with ${VAR} expansion
//   - AUTOBULLET_* environment variables
//
// A Watcher reloads the file when it changes on disk.
//
// Example config.toml:
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[autobullet]
//	enabled = true
//
//	[keymap]
//	backspace = "deleteLeft"
package config
