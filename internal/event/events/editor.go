package events

import "github.com/dshills/autobullet/internal/event/topic"

// Editor and document event topics.
const (
	// TopicActiveEditorChanged is published when the active editor changes,
	// including when the last editor is closed.
	TopicActiveEditorChanged topic.Topic = "editor.active.changed"

	// TopicDocumentOpened is published when a document is opened.
	TopicDocumentOpened topic.Topic = "document.opened"

	// TopicDocumentLanguageChanged is published when a document's language mode changes.
	TopicDocumentLanguageChanged topic.Topic = "document.language.changed"

	// TopicDocumentClosed is published when a document is closed.
	TopicDocumentClosed topic.Topic = "document.closed"
)

// ActiveEditorChanged is published when the active editor changes.
type ActiveEditorChanged struct {
	// DocumentID identifies the document shown by the new active editor.
	// Empty when there is no active editor.
	DocumentID string

	// LanguageID is the language of that document.
	LanguageID string
}

// DocumentOpened is published when a document is opened.
type DocumentOpened struct {
	DocumentID string
	LanguageID string
}

// DocumentLanguageChanged is published when a document's language mode changes.
type DocumentLanguageChanged struct {
	DocumentID  string
	OldLanguage string
	NewLanguage string
}

// DocumentClosed is published when a document is closed.
type DocumentClosed struct {
	DocumentID string
}
