// Package backend provides the terminal abstraction for the interactive editor.
package backend

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Interrupt event payload
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlS
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Style is a set of text attributes.
type Style uint8

const (
	StyleReverse Style = 1 << iota
	StyleBold
	StyleDim
)

// StyleDefault is plain text.
const StyleDefault Style = 0

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a single cell. Positions outside the terminal are ignored.
	SetContent(x, y int, r rune, style Style)

	// Clear clears the entire screen.
	Clear()

	// Show flushes changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	PollEvent() Event

	// PostEvent posts a synthetic key or interrupt event.
	PostEvent(event Event)
}

// DrawString draws s starting at (x, y) and returns the column after it.
// Drawing stops at maxX.
func DrawString(b Backend, x, y, maxX int, s string, style Style) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		if r == '\t' {
			r = ' '
		}
		b.SetContent(x, y, r, style)
		x++
	}
	return x
}
