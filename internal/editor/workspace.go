package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dshills/autobullet/internal/dispatcher"
	"github.com/dshills/autobullet/internal/engine/buffer"
	"github.com/dshills/autobullet/internal/event"
	"github.com/dshills/autobullet/internal/event/events"
	"github.com/dshills/autobullet/internal/event/topic"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/logging"
)

// eventSource is the source recorded on events published by a workspace.
const eventSource = "editor"

// Workspace is a set of open documents with at most one active editor.
type Workspace struct {
	bus        event.Bus
	dispatcher *dispatcher.Dispatcher
	keymap     *Keymap
	logger     *logging.Logger

	docs   map[string]*Document
	order  []string
	active *Document
	closed bool
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the workspace logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithBus sets the event bus. The workspace closes it on Close.
func WithBus(b event.Bus) Option {
	return func(w *Workspace) {
		if b != nil {
			w.bus = b
		}
	}
}

// New creates an empty workspace with the built-in commands registered.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		bus:        event.NewBus(),
		dispatcher: dispatcher.New(),
		keymap:     NewKeymap(),
		logger:     logging.Nop(),
		docs:       make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("editor")

	w.dispatcher.Hooks().SetPanicHandler(func(name string, recovered any) {
		w.logger.Error("keystroke hook %s panicked: %v", name, recovered)
	})
	w.registerBuiltins()
	return w
}

// Bus returns the workspace event bus.
func (w *Workspace) Bus() event.Bus { return w.bus }

// Dispatcher returns the command dispatcher.
func (w *Workspace) Dispatcher() *dispatcher.Dispatcher { return w.dispatcher }

// Keymap returns the key bindings.
func (w *Workspace) Keymap() *Keymap { return w.keymap }

// Open adds a document to the workspace without showing it.
func (w *Workspace) Open(ctx context.Context, content, language string, opts ...buffer.Option) (*Document, error) {
	return w.open(ctx, "", content, language, opts...)
}

// OpenFile reads path and adds it to the workspace without showing it.
// The language is detected from the file extension. A missing file opens
// as an empty document that is created when saved.
func (w *Workspace) OpenFile(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("editor: open file: %w", err)
	}
	content := string(data)
	return w.open(ctx, path, content, DetectLanguage(path), buffer.WithDetectedLineEnding(content))
}

func (w *Workspace) open(ctx context.Context, path, content, language string, opts ...buffer.Option) (*Document, error) {
	if w.closed {
		return nil, ErrWorkspaceClosed
	}
	if language == "" {
		return nil, ErrInvalidLanguage
	}
	buf, err := buffer.New(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("editor: open document: %w", err)
	}

	doc := newDocument(path, language, buf)
	w.docs[doc.id] = doc
	w.order = append(w.order, doc.id)

	w.publish(ctx, events.TopicDocumentOpened, events.DocumentOpened{
		DocumentID: doc.id,
		LanguageID: doc.language,
	})
	return doc, nil
}

// Show makes doc the active editor.
func (w *Workspace) Show(ctx context.Context, doc *Document) error {
	if w.closed {
		return ErrWorkspaceClosed
	}
	if doc == nil || w.docs[doc.id] != doc {
		return ErrDocumentNotFound
	}
	w.active = doc
	w.publish(ctx, events.TopicActiveEditorChanged, events.ActiveEditorChanged{
		DocumentID: doc.id,
		LanguageID: doc.language,
	})
	return nil
}

// OpenDocument opens content and shows it in the active editor.
func (w *Workspace) OpenDocument(ctx context.Context, content, language string, opts ...buffer.Option) (*Document, error) {
	doc, err := w.Open(ctx, content, language, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Show(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetLanguage changes the language mode of doc.
func (w *Workspace) SetLanguage(ctx context.Context, doc *Document, language string) error {
	if language == "" {
		return ErrInvalidLanguage
	}
	if doc == nil || w.docs[doc.id] != doc {
		return ErrDocumentNotFound
	}
	old := doc.language
	if old == language {
		return nil
	}
	doc.language = language
	w.publish(ctx, events.TopicDocumentLanguageChanged, events.DocumentLanguageChanged{
		DocumentID:  doc.id,
		OldLanguage: old,
		NewLanguage: language,
	})
	return nil
}

// CloseAll closes every document, leaving no active editor.
func (w *Workspace) CloseAll(ctx context.Context) {
	hadActive := w.active != nil
	order := w.order

	w.active = nil
	w.docs = make(map[string]*Document)
	w.order = nil

	if hadActive {
		w.publish(ctx, events.TopicActiveEditorChanged, events.ActiveEditorChanged{})
	}
	for _, id := range order {
		w.publish(ctx, events.TopicDocumentClosed, events.DocumentClosed{DocumentID: id})
	}
}

// Active returns the document shown in the active editor.
func (w *Workspace) Active() (*Document, bool) {
	return w.active, w.active != nil
}

// Documents returns the open documents in open order.
func (w *Workspace) Documents() []*Document {
	docs := make([]*Document, 0, len(w.order))
	for _, id := range w.order {
		docs = append(docs, w.docs[id])
	}
	return docs
}

// SetCursor moves the cursor of the active editor.
func (w *Workspace) SetCursor(p buffer.Point) error {
	if w.active == nil {
		return ErrNoActiveEditor
	}
	w.active.SetCursor(p)
	return nil
}

// Type types text through the type command, so keystroke hooks see it.
func (w *Workspace) Type(ctx context.Context, text string) error {
	return w.dispatcher.Execute(ctx, dispatcher.CommandType, map[string]any{dispatcher.ArgText: text})
}

// PressKey simulates a key press. Bound keys run their command; Enter,
// Tab and runes are typed; arrow keys, Home and End move the cursor.
func (w *Workspace) PressKey(ctx context.Context, key input.Key, r rune) error {
	if cmd, ok := w.keymap.Lookup(key); ok {
		return w.dispatcher.Execute(ctx, cmd, nil)
	}

	switch key {
	case input.KeyEnter:
		return w.Type(ctx, input.TextNewline)
	case input.KeyTab:
		return w.Type(ctx, "\t")
	case input.KeyRune:
		if r == 0 {
			return ErrInvalidKey
		}
		return w.Type(ctx, string(r))
	case input.KeyLeft, input.KeyRight, input.KeyUp, input.KeyDown, input.KeyHome, input.KeyEnd:
		if w.active == nil {
			return nil
		}
		w.active.SetCursor(move(w.active, key))
		return nil
	case input.KeyDelete:
		return w.dispatcher.Execute(ctx, CommandDeleteRight, nil)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
}

// Close closes all documents and the event bus.
func (w *Workspace) Close(ctx context.Context) {
	if w.closed {
		return
	}
	w.CloseAll(ctx)
	w.closed = true
	w.bus.Close()
}

// publish delivers an event. Handler failures belong to the subscriber and
// are logged rather than returned.
func (w *Workspace) publish(ctx context.Context, t topic.Topic, payload any) {
	if err := w.bus.Publish(ctx, event.New(t, payload, eventSource)); err != nil {
		w.logger.Warn("publish %s: %v", t, err)
	}
}
