package plugin

// State represents the lifecycle state of an extension.
type State int

// Extension states.
const (
	// StateUnloaded - Extension is registered but not active.
	StateUnloaded State = iota

	// StateActivating - Extension is being activated.
	StateActivating

	// StateActive - Extension is active.
	StateActive

	// StateDeactivating - Extension is being deactivated.
	StateDeactivating

	// StateError - Activation or deactivation failed.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	case StateDeactivating:
		return "deactivating"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// CanActivate returns true if an extension in this state may be activated.
func (s State) CanActivate() bool {
	return s == StateUnloaded || s == StateError
}
