package api

import (
	"context"

	"github.com/dshills/autobullet/internal/engine/buffer"
)

// EditBuilder collects the edits of one transaction.
// Positions refer to the document as it was when the transaction began.
type EditBuilder interface {
	// Replace replaces the text in r.
	Replace(r buffer.Range, text string)

	// Insert inserts text at p.
	Insert(p buffer.Point, text string)

	// Delete removes the text in r.
	Delete(r buffer.Range)
}

// TextEditor is a view of one open document.
type TextEditor interface {
	// DocumentID returns the identifier of the shown document.
	DocumentID() string

	// LanguageID returns the language of the shown document.
	LanguageID() string

	// Cursor returns the primary cursor position.
	Cursor() buffer.Point

	// LineCount returns the number of lines in the document.
	LineCount() int

	// LineText returns the text of a line without its terminator.
	LineText(line int) (string, error)

	// LineRange returns the range of a line without its terminator.
	LineRange(line int) (buffer.Range, error)

	// Edit runs fn and applies the collected edits atomically.
	// Nothing is applied if fn returns an error.
	Edit(ctx context.Context, fn func(EditBuilder) error) error
}
