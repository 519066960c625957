package autobullet

// State is the interception state of the controller.
type State int

const (
	// StateInactive means keystrokes reach the host untouched.
	StateInactive State = iota

	// StateActive means the keystroke hook is installed.
	StateActive
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}
