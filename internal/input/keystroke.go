package input

// Text sequences with special meaning to the type command.
const (
	// TextNewline is the text typed by the Enter key.
	TextNewline = "\n"

	// TextBackspace is the control character for Backspace.
	TextBackspace = "\b"
)

// Source indicates where a keystroke originated.
type Source uint8

const (
	// SourceKeyboard indicates the keystroke came from a key press.
	SourceKeyboard Source = iota
	// SourceScript indicates the keystroke came from a replay script.
	SourceScript
	// SourceAPI indicates the keystroke came from an API call.
	SourceAPI
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Keystroke is a pending character insertion.
type Keystroke struct {
	// Text is the text the default type handler will insert.
	Text string

	// Source indicates where this keystroke originated.
	Source Source
}

// IsNewline reports whether the keystroke is exactly the Enter key.
func (k *Keystroke) IsNewline() bool {
	return k != nil && k.Text == TextNewline
}
