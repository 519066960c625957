// Package autobullet continues markdown list bullets.
//
// While the active document is markdown, pressing Enter on a line that
// starts with a bullet ("-", "*" or "+" followed by whitespace) carries the
// bullet prefix onto the new line. Pressing Enter or Backspace on a bullet
// with no content clears the line instead.
//
// The Controller is an extension: it intercepts keystrokes only while the
// active editor shows a markdown document, attaching and detaching its
// keystroke hook as editors, documents and languages change.
package autobullet
