// Package app wires the workspace, the extension host and the auto-bullet
// extension into the commands exposed by the autobullet binary.
//
// A Session owns one workspace with the extension activated. Replay runs
// Lua scenarios, each in its own Session. Check classifies the lines of a
// markdown file. Editor is the interactive terminal editor.
package app
