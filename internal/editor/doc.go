// Package editor implements a headless editor host.
//
// A Workspace owns open documents, the active editor, a command dispatcher,
// a keymap and an event bus. It implements api.Host so extensions run
// against it exactly as they would against an interactive editor; the
// terminal front end in package app and the script runner both drive it.
//
// A Workspace is not safe for concurrent use. Commands run re-entrantly
// (type runs keystroke hooks, which may edit the document), so all calls
// must come from the goroutine that owns the workspace.
package editor
