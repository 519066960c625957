package editor

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/autobullet/internal/dispatcher"
	"github.com/dshills/autobullet/internal/engine/buffer"
	"github.com/dshills/autobullet/internal/input"
)

// CommandDeleteRight deletes the character right of the cursor.
const CommandDeleteRight = "deleteRight"

func (w *Workspace) registerBuiltins() {
	builtins := map[string]dispatcher.CommandFunc{
		dispatcher.CommandType:        w.cmdType,
		dispatcher.CommandDefaultType: w.cmdDefaultType,
		dispatcher.CommandDeleteLeft:  w.cmdDeleteLeft,
		CommandDeleteRight:            w.cmdDeleteRight,
	}
	for name, fn := range builtins {
		if _, err := w.dispatcher.Registry().Register(name, fn); err != nil {
			// Only reachable if the registry is shared, which New never does.
			panic(fmt.Sprintf("editor: register %s: %v", name, err))
		}
	}
}

func (w *Workspace) cmdType(ctx context.Context, args map[string]any) error {
	text, ok := dispatcher.TextArg(args)
	if !ok {
		return fmt.Errorf("%w: type needs a text argument", dispatcher.ErrInvalidCommand)
	}
	return w.dispatcher.Type(ctx, &input.Keystroke{Text: text, Source: input.SourceAPI})
}

// cmdDefaultType inserts text at the cursor and moves the cursor after it.
// Without an active editor it does nothing.
func (w *Workspace) cmdDefaultType(_ context.Context, args map[string]any) error {
	text, ok := dispatcher.TextArg(args)
	if !ok {
		return fmt.Errorf("%w: default:type needs a text argument", dispatcher.ErrInvalidCommand)
	}
	doc := w.active
	if doc == nil || text == "" {
		return nil
	}
	end, err := doc.buf.Insert(doc.cursor, text)
	if err != nil {
		return fmt.Errorf("editor: type: %w", err)
	}
	doc.cursor = end
	return nil
}

func (w *Workspace) cmdDeleteLeft(context.Context, map[string]any) error {
	doc := w.active
	if doc == nil {
		return nil
	}
	at, err := doc.buf.DeleteLeft(doc.cursor)
	if err != nil {
		return fmt.Errorf("editor: delete left: %w", err)
	}
	doc.cursor = at
	return nil
}

func (w *Workspace) cmdDeleteRight(context.Context, map[string]any) error {
	doc := w.active
	if doc == nil {
		return nil
	}
	p := doc.cursor
	text, err := doc.buf.LineText(p.Line)
	if err != nil {
		return fmt.Errorf("editor: delete right: %w", err)
	}

	var end buffer.Point
	switch {
	case p.Column < len(text):
		_, size := utf8.DecodeRuneInString(text[p.Column:])
		end = buffer.Point{Line: p.Line, Column: p.Column + size}
	case p.Line < doc.buf.LineCount()-1:
		end = buffer.Point{Line: p.Line + 1}
	default:
		return nil
	}

	if _, err := doc.buf.ApplyEdit(buffer.NewEdit(buffer.Range{Start: p, End: end}, "")); err != nil {
		return fmt.Errorf("editor: delete right: %w", err)
	}
	return nil
}

// move returns the cursor position after pressing a navigation key.
func move(doc *Document, key input.Key) buffer.Point {
	p := doc.cursor
	text, _ := doc.buf.LineText(p.Line)

	switch key {
	case input.KeyLeft:
		if p.Column > 0 {
			_, size := utf8.DecodeLastRuneInString(text[:p.Column])
			p.Column -= size
		} else if p.Line > 0 {
			prev, _ := doc.buf.LineText(p.Line - 1)
			p = buffer.Point{Line: p.Line - 1, Column: len(prev)}
		}
	case input.KeyRight:
		if p.Column < len(text) {
			_, size := utf8.DecodeRuneInString(text[p.Column:])
			p.Column += size
		} else if p.Line < doc.buf.LineCount()-1 {
			p = buffer.Point{Line: p.Line + 1}
		}
	case input.KeyUp:
		p.Line--
	case input.KeyDown:
		p.Line++
	case input.KeyHome:
		p.Column = 0
	case input.KeyEnd:
		p.Column = len(text)
	}
	return doc.clamp(p)
}
