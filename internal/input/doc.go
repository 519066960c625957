// Package input defines the keystrokes and key names the editor host routes
// through its dispatcher.
//
// A Keystroke carries the text about to be inserted by the default "type"
// command. Keystroke hooks receive a pointer and may append to Text before
// the default handler runs.
package input
