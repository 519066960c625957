package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/dshills/autobullet/internal/config"
	"github.com/dshills/autobullet/internal/editor"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/renderer/backend"
)

const gutterWidth = 5

// Editor is a single-document terminal editor on a Session.
//
//	Ctrl+S  save
//	Ctrl+L  toggle the language between markdown and plaintext
//	Ctrl+Q  quit
type Editor struct {
	session *Session
	backend backend.Backend
	logger  *logging.Logger
	doc     *editor.Document

	// top is the first buffer line shown.
	top    int
	status string
}

// NewEditor opens path in the session and shows it.
func NewEditor(ctx context.Context, s *Session, b backend.Backend, path string) (*Editor, error) {
	ws := s.Workspace()
	doc, err := ws.OpenFile(ctx, path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	if err := ws.Show(ctx, doc); err != nil {
		return nil, err
	}
	doc.CursorToEnd()

	return &Editor{
		session: s,
		backend: b,
		logger:  s.logger.WithComponent("editor"),
		doc:     doc,
		status:  "^S save  ^L language  ^Q quit",
	}, nil
}

// Document returns the edited document.
func (e *Editor) Document() *editor.Document { return e.doc }

// Reload posts cfg to the event loop, which applies it to the session.
// It is safe to call from any goroutine.
func (e *Editor) Reload(cfg *config.Config) {
	e.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: cfg})
}

// Run draws the document and processes terminal events until the user quits,
// ctx is cancelled or the backend closes. The backend must be initialized.
func (e *Editor) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		e.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ErrQuit})
	})
	defer stop()

	for {
		e.draw()

		ev := e.backend.PollEvent()
		err := e.handleEvent(ctx, ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (e *Editor) handleEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventClosed:
		return ErrQuit
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case error:
			return data
		case *config.Config:
			e.session.Apply(ctx, data)
			e.status = "config reloaded"
		}
		return nil
	case backend.EventKey:
		return e.handleKey(ctx, ev)
	default:
		return nil
	}
}

func (e *Editor) handleKey(ctx context.Context, ev backend.Event) error {
	ws := e.session.Workspace()

	switch ev.Key {
	case backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyCtrlS:
		e.save()
		return nil
	case backend.KeyCtrlL:
		e.toggleLanguage(ctx)
		return nil
	}

	key, ok := inputKeys[ev.Key]
	if !ok {
		return nil
	}
	if err := ws.PressKey(ctx, key, ev.Rune); err != nil {
		e.logger.Warn("key %s: %v", key, err)
		e.status = err.Error()
	}
	return nil
}

var inputKeys = map[backend.Key]input.Key{
	backend.KeyRune:      input.KeyRune,
	backend.KeyEnter:     input.KeyEnter,
	backend.KeyTab:       input.KeyTab,
	backend.KeyBackspace: input.KeyBackspace,
	backend.KeyDelete:    input.KeyDelete,
	backend.KeyHome:      input.KeyHome,
	backend.KeyEnd:       input.KeyEnd,
	backend.KeyUp:        input.KeyUp,
	backend.KeyDown:      input.KeyDown,
	backend.KeyLeft:      input.KeyLeft,
	backend.KeyRight:     input.KeyRight,
}

// save writes the document to its path.
func (e *Editor) save() {
	if err := e.Save(); err != nil {
		e.logger.Error("%v", err)
		e.status = err.Error()
		return
	}
	e.status = "saved " + e.doc.Name()
}

// Save writes the document to its path.
func (e *Editor) Save() error {
	path := e.doc.Path()
	if path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(path, []byte(e.doc.Text()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func (e *Editor) toggleLanguage(ctx context.Context) {
	next := editor.LanguageMarkdown
	if e.doc.LanguageID() == editor.LanguageMarkdown {
		next = editor.LanguagePlaintext
	}
	if err := e.session.Workspace().SetLanguage(ctx, e.doc, next); err != nil {
		e.status = err.Error()
		return
	}
	e.status = "language " + next
}

func (e *Editor) draw() {
	b := e.backend
	width, height := b.Size()
	textHeight := height - 1
	if width <= gutterWidth || textHeight <= 0 {
		return
	}

	b.Clear()
	lines := e.doc.Buffer().Lines()
	cursor := e.doc.Cursor()
	e.scrollTo(cursor.Line, textHeight)

	for row := 0; row < textHeight; row++ {
		n := e.top + row
		if n >= len(lines) {
			backend.DrawString(b, 0, row, width, "~", backend.StyleDim)
			continue
		}
		backend.DrawString(b, 0, row, gutterWidth, fmt.Sprintf("%*d ", gutterWidth-1, n+1), backend.StyleDim)
		backend.DrawString(b, gutterWidth, row, width, lines[n], backend.StyleDefault)
	}

	status := fmt.Sprintf(" %s  [%s]  bullets %s  %d:%d  %s",
		e.doc.Name(), e.doc.LanguageID(), e.session.Bullets().State(),
		cursor.Line+1, cursor.Column+1, e.status)
	end := backend.DrawString(b, 0, height-1, width, status, backend.StyleReverse)
	for x := end; x < width; x++ {
		b.SetContent(x, height-1, ' ', backend.StyleReverse)
	}

	col := utf8.RuneCountInString(lines[cursor.Line][:cursor.Column])
	b.ShowCursor(gutterWidth+col, cursor.Line-e.top)
	b.Show()
}

// scrollTo adjusts top so line is visible.
func (e *Editor) scrollTo(line, height int) {
	if line < e.top {
		e.top = line
	}
	if line >= e.top+height {
		e.top = line - height + 1
	}
}
