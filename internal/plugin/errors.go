package plugin

import "errors"

// Extension host errors.
var (
	// ErrExtensionNotFound is returned when an extension is not registered.
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrAlreadyRegistered is returned when an extension name is taken.
	ErrAlreadyRegistered = errors.New("extension already registered")

	// ErrAlreadyActive is returned when activating an active extension.
	ErrAlreadyActive = errors.New("extension is already active")

	// ErrNotActive is returned when deactivating an inactive extension.
	ErrNotActive = errors.New("extension is not active")

	// ErrInvalidExtension is returned for a nil or unnamed extension.
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrExtensionPanic is returned when Activate or Deactivate panics.
	ErrExtensionPanic = errors.New("extension panicked")
)
