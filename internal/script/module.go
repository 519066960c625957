package script

import (
	"context"
	"fmt"
	"unicode/utf8"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/autobullet/internal/bullet"
	"github.com/dshills/autobullet/internal/editor"
	"github.com/dshills/autobullet/internal/engine/buffer"
	"github.com/dshills/autobullet/internal/input"
)

// module implements the ks Lua module for one script run.
type module struct {
	ws *editor.Workspace

	// failure is the first Go error raised into Lua.
	failure error
}

func (m *module) loader(L *glua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]glua.LGFunction{
		"open":         m.open,
		"cursor":       m.cursor,
		"type":         m.typeText,
		"key":          m.key,
		"set_language": m.setLanguage,
		"language":     m.language,
		"line":         m.line,
		"lines":        m.lines,
		"text":         m.text,
		"close_all":    m.closeAll,
		"bullet":       m.bullet,
		"is_blank":     m.isBlank,
		"classify":     m.classify,
		"expect":       m.expect,
	})
	L.Push(mod)
	return 1
}

// raise records err and raises it as a Lua error.
func (m *module) raise(L *glua.LState, err error) int {
	if m.failure == nil {
		m.failure = err
	}
	L.RaiseError("%s", err.Error())
	return 0
}

func contextOf(L *glua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (m *module) active(L *glua.LState) (*editor.Document, bool) {
	doc, ok := m.ws.Active()
	if !ok {
		m.raise(L, editor.ErrNoActiveEditor)
	}
	return doc, ok
}

// ks.open(content, language[, line_ending]) opens content in the active
// editor with the cursor at the end of the document.
func (m *module) open(L *glua.LState) int {
	content := L.CheckString(1)
	language := L.CheckString(2)
	le, err := buffer.ParseLineEnding(L.OptString(3, "lf"))
	if err != nil {
		return m.raise(L, err)
	}

	doc, err := m.ws.OpenDocument(contextOf(L), content, language, buffer.WithLineEnding(le))
	if err != nil {
		return m.raise(L, err)
	}
	doc.CursorToEnd()
	return 0
}

// ks.cursor(line[, col]) moves the cursor. Called without arguments it
// returns the current line and column.
func (m *module) cursor(L *glua.LState) int {
	doc, ok := m.active(L)
	if !ok {
		return 0
	}
	if L.GetTop() == 0 {
		p := doc.Cursor()
		L.Push(glua.LNumber(p.Line + 1))
		L.Push(glua.LNumber(p.Column))
		return 2
	}

	line := L.CheckInt(1) - 1
	text, err := doc.Buffer().LineText(line)
	if err != nil {
		return m.raise(L, err)
	}
	col := L.OptInt(2, len(text))
	if col < 0 || col > len(text) {
		return m.raise(L, fmt.Errorf("%w: column %d", buffer.ErrPointOutOfRange, col))
	}
	doc.SetCursor(buffer.Point{Line: line, Column: col})
	return 0
}

// ks.type(text) types text through the type command.
func (m *module) typeText(L *glua.LState) int {
	if err := m.ws.Type(contextOf(L), L.CheckString(1)); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// ks.key(name) presses a named key. A single character presses that rune.
func (m *module) key(L *glua.LState) int {
	name := L.CheckString(1)

	key, r := input.KeyFromName(name), rune(0)
	if key == input.KeyNone {
		if utf8.RuneCountInString(name) != 1 {
			return m.raise(L, fmt.Errorf("%w: %q", ErrUnknownKey, name))
		}
		key, r = input.KeyRune, []rune(name)[0]
	}
	if err := m.ws.PressKey(contextOf(L), key, r); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// ks.set_language(language) changes the language of the active document.
func (m *module) setLanguage(L *glua.LState) int {
	doc, ok := m.active(L)
	if !ok {
		return 0
	}
	if err := m.ws.SetLanguage(contextOf(L), doc, L.CheckString(1)); err != nil {
		return m.raise(L, err)
	}
	return 0
}

// ks.language() returns the language of the active document, or nil.
func (m *module) language(L *glua.LState) int {
	doc, ok := m.ws.Active()
	if !ok {
		L.Push(glua.LNil)
		return 1
	}
	L.Push(glua.LString(doc.LanguageID()))
	return 1
}

// ks.line(n) returns line n of the active document.
func (m *module) line(L *glua.LState) int {
	doc, ok := m.active(L)
	if !ok {
		return 0
	}
	text, err := doc.Buffer().LineText(L.CheckInt(1) - 1)
	if err != nil {
		return m.raise(L, err)
	}
	L.Push(glua.LString(text))
	return 1
}

// ks.lines() returns the lines of the active document as an array.
func (m *module) lines(L *glua.LState) int {
	doc, ok := m.active(L)
	if !ok {
		return 0
	}
	tbl := L.NewTable()
	for _, line := range doc.Buffer().Lines() {
		tbl.Append(glua.LString(line))
	}
	L.Push(tbl)
	return 1
}

// ks.text() returns the full text of the active document.
func (m *module) text(L *glua.LState) int {
	doc, ok := m.active(L)
	if !ok {
		return 0
	}
	L.Push(glua.LString(doc.Text()))
	return 1
}

func (m *module) closeAll(L *glua.LState) int {
	m.ws.CloseAll(contextOf(L))
	return 0
}

// ks.bullet(text) returns the bullet prefix of text, or nil.
func (m *module) bullet(L *glua.LState) int {
	prefix, ok := bullet.Parse(L.CheckString(1))
	if !ok {
		L.Push(glua.LNil)
		return 1
	}
	L.Push(glua.LString(prefix))
	return 1
}

func (m *module) isBlank(L *glua.LState) int {
	L.Push(glua.LBool(bullet.IsBlank(L.CheckString(1))))
	return 1
}

// ks.classify(text) returns "none", "item" or "blank".
func (m *module) classify(L *glua.LState) int {
	L.Push(glua.LString(bullet.Classify(L.CheckString(1)).String()))
	return 1
}

// ks.expect(got, want[, message]) raises unless got equals want.
func (m *module) expect(L *glua.LState) int {
	got, want := L.CheckAny(1), L.CheckAny(2)
	if L.Equal(got, want) {
		return 0
	}

	msg := L.OptString(3, "")
	if msg != "" {
		msg += ": "
	}
	return m.raise(L, fmt.Errorf("%w: %sgot %s, want %s", ErrExpectation, msg, describe(got), describe(want)))
}

func describe(v glua.LValue) string {
	if s, ok := v.(glua.LString); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return v.String()
}
