package editor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/autobullet/internal/engine/buffer"
	"github.com/dshills/autobullet/internal/plugin/api"
)

// textEditor is the api.TextEditor view of a document shown in the workspace.
type textEditor struct {
	doc *Document
}

var _ api.TextEditor = (*textEditor)(nil)

func (e *textEditor) DocumentID() string   { return e.doc.id }
func (e *textEditor) LanguageID() string   { return e.doc.language }
func (e *textEditor) Cursor() buffer.Point { return e.doc.cursor }
func (e *textEditor) LineCount() int       { return e.doc.buf.LineCount() }

func (e *textEditor) LineText(line int) (string, error) {
	return e.doc.buf.LineText(line)
}

func (e *textEditor) LineRange(line int) (buffer.Range, error) {
	return e.doc.buf.LineRange(line)
}

// Edit collects edits from fn and applies them in one step. A panic in fn
// is returned as an error and leaves the document untouched.
func (e *textEditor) Edit(ctx context.Context, fn func(api.EditBuilder) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := &editBuilder{}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("editor: edit transaction panicked: %v", r)
		}
	}()
	if err := fn(b); err != nil {
		return err
	}

	edits := b.sorted()
	if err := e.doc.buf.ApplyEdits(edits); err != nil {
		return fmt.Errorf("editor: apply edits: %w", err)
	}
	for _, edit := range edits {
		e.doc.cursor = shiftPoint(e.doc.cursor, edit)
	}
	return nil
}

// editBuilder implements api.EditBuilder.
type editBuilder struct {
	edits []buffer.Edit
}

func (b *editBuilder) Replace(r buffer.Range, text string) {
	b.edits = append(b.edits, buffer.NewEdit(r, text))
}

func (b *editBuilder) Insert(p buffer.Point, text string) {
	b.edits = append(b.edits, buffer.NewInsert(p, text))
}

func (b *editBuilder) Delete(r buffer.Range) {
	b.edits = append(b.edits, buffer.NewEdit(r, ""))
}

// sorted returns the edits highest position first, as ApplyEdits expects.
func (b *editBuilder) sorted() []buffer.Edit {
	edits := make([]buffer.Edit, 0, len(b.edits))
	for _, e := range b.edits {
		if !e.IsNoOp() {
			edits = append(edits, e)
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[j].Range.Start.Before(edits[i].Range.Start)
	})
	return edits
}

// shiftPoint maps p from the document before edit to the document after it.
func shiftPoint(p buffer.Point, edit buffer.Edit) buffer.Point {
	r := edit.Range
	if p.Before(r.Start) {
		return p
	}
	end := endOf(r.Start, edit.NewText)
	if p.Before(r.End) {
		return end
	}
	if p.Line == r.End.Line {
		return buffer.Point{Line: end.Line, Column: end.Column + p.Column - r.End.Column}
	}
	return buffer.Point{Line: p.Line + end.Line - r.End.Line, Column: p.Column}
}

// endOf returns the point after text inserted at start.
func endOf(start buffer.Point, text string) buffer.Point {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	n := strings.Count(text, "\n")
	if n == 0 {
		return buffer.Point{Line: start.Line, Column: start.Column + len(text)}
	}
	return buffer.Point{Line: start.Line + n, Column: len(text) - strings.LastIndex(text, "\n") - 1}
}
