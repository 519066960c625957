package editor

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/autobullet/internal/engine/buffer"
)

// Document is an open text document with its editor state.
type Document struct {
	id       string
	path     string
	language string
	buf      *buffer.Buffer
	cursor   buffer.Point
}

func newDocument(path, language string, buf *buffer.Buffer) *Document {
	return &Document{
		id:       uuid.NewString(),
		path:     path,
		language: language,
		buf:      buf,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Path returns the file path, empty for untitled documents.
func (d *Document) Path() string { return d.path }

// Name returns the display name.
func (d *Document) Name() string {
	if d.path == "" {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

// LanguageID returns the document's language mode.
func (d *Document) LanguageID() string { return d.language }

// Buffer returns the document text.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// Text returns the full document content.
func (d *Document) Text() string { return d.buf.Text() }

// Cursor returns the cursor position.
func (d *Document) Cursor() buffer.Point { return d.cursor }

// SetCursor moves the cursor, clamping it to the document.
func (d *Document) SetCursor(p buffer.Point) {
	d.cursor = d.clamp(p)
}

// CursorToEnd moves the cursor to the end of the document.
func (d *Document) CursorToEnd() {
	last := d.buf.LineCount() - 1
	text, _ := d.buf.LineText(last)
	d.cursor = buffer.Point{Line: last, Column: len(text)}
}

func (d *Document) clamp(p buffer.Point) buffer.Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if n := d.buf.LineCount(); p.Line >= n {
		p.Line = n - 1
	}
	text, _ := d.buf.LineText(p.Line)
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > len(text) {
		p.Column = len(text)
	}
	return p
}
