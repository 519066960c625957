package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for a command.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrCommandExists indicates a command name is already registered.
	ErrCommandExists = errors.New("dispatcher: command already registered")

	// ErrInvalidCommand indicates a command name or function is invalid.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
