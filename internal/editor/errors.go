package editor

import "errors"

// Editor errors.
var (
	// ErrDocumentNotFound indicates the document is not open in the workspace.
	ErrDocumentNotFound = errors.New("editor: document not found")

	// ErrNoActiveEditor indicates an operation needs an active editor.
	ErrNoActiveEditor = errors.New("editor: no active editor")

	// ErrInvalidLanguage indicates an empty language id.
	ErrInvalidLanguage = errors.New("editor: invalid language id")

	// ErrInvalidKey indicates a key that cannot be pressed.
	ErrInvalidKey = errors.New("editor: invalid key")

	// ErrWorkspaceClosed indicates the workspace was closed.
	ErrWorkspaceClosed = errors.New("editor: workspace closed")
)
