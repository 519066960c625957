package autobullet

import (
	"context"
	"errors"
	"strings"

	"github.com/dshills/autobullet/internal/engine/buffer"
	"github.com/dshills/autobullet/internal/event"
	"github.com/dshills/autobullet/internal/event/topic"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/plugin/api"
)

var errFake = errors.New("fake host failure")

// fakeEditor is a TextEditor over a slice of lines.
type fakeEditor struct {
	language string
	lines    []string
	cursor   buffer.Point

	lineErr  bool
	editErr  bool
	panicOn  string
	replaced []buffer.Range
}

func (e *fakeEditor) DocumentID() string   { return "doc" }
func (e *fakeEditor) LanguageID() string   { return e.language }
func (e *fakeEditor) Cursor() buffer.Point { return e.cursor }
func (e *fakeEditor) LineCount() int       { return len(e.lines) }

func (e *fakeEditor) LineText(line int) (string, error) {
	if e.panicOn == "LineText" {
		panic("LineText")
	}
	if e.lineErr || line < 0 || line >= len(e.lines) {
		return "", buffer.ErrLineOutOfRange
	}
	return e.lines[line], nil
}

func (e *fakeEditor) LineRange(line int) (buffer.Range, error) {
	if line < 0 || line >= len(e.lines) {
		return buffer.Range{}, buffer.ErrLineOutOfRange
	}
	return buffer.Range{
		Start: buffer.Point{Line: line},
		End:   buffer.Point{Line: line, Column: len(e.lines[line])},
	}, nil
}

func (e *fakeEditor) Edit(_ context.Context, fn func(api.EditBuilder) error) error {
	if e.editErr {
		return errFake
	}
	b := &fakeBuilder{}
	if err := fn(b); err != nil {
		return err
	}
	for _, r := range b.replaced {
		e.replaced = append(e.replaced, r)
		e.lines[r.Start.Line] = e.lines[r.Start.Line][:r.Start.Column] + b.text + e.lines[r.End.Line][r.End.Column:]
		e.cursor = r.Start
	}
	return nil
}

func (e *fakeEditor) text() string { return strings.Join(e.lines, "\n") }

type fakeBuilder struct {
	replaced []buffer.Range
	text     string
}

func (b *fakeBuilder) Replace(r buffer.Range, text string) {
	b.replaced = append(b.replaced, r)
	b.text = text
}
func (b *fakeBuilder) Insert(p buffer.Point, text string) { b.Replace(buffer.Range{Start: p, End: p}, text) }
func (b *fakeBuilder) Delete(r buffer.Range)              { b.Replace(r, "") }

// fakeHost records registrations made through api.Host.
type fakeHost struct {
	editor *fakeEditor

	commands map[string]api.CommandHandler
	hooks    map[string]api.KeystrokeHandler
	bindings map[input.Key]string
	subs     map[topic.Topic]event.HandlerFunc

	executed     []string
	interceptErr bool
	attachCount  int
}

func newFakeHost(ed *fakeEditor) *fakeHost {
	return &fakeHost{
		editor:   ed,
		commands: make(map[string]api.CommandHandler),
		hooks:    make(map[string]api.KeystrokeHandler),
		bindings: make(map[input.Key]string),
		subs:     make(map[topic.Topic]event.HandlerFunc),
	}
}

func (h *fakeHost) ActiveEditor() (api.TextEditor, bool) {
	if h.editor == nil {
		return nil, false
	}
	return h.editor, true
}

func (h *fakeHost) ExecuteCommand(ctx context.Context, name string, args map[string]any) error {
	h.executed = append(h.executed, name)
	if fn, ok := h.commands[name]; ok {
		return fn(ctx, args)
	}
	return nil
}

func (h *fakeHost) RegisterCommand(name string, fn api.CommandHandler) (api.Disposable, error) {
	h.commands[name] = fn
	return api.DisposableFunc(func() { delete(h.commands, name) }), nil
}

func (h *fakeHost) InterceptKeystrokes(name string, _ int, fn api.KeystrokeHandler) (api.Disposable, error) {
	if h.interceptErr {
		return nil, errFake
	}
	h.attachCount++
	h.hooks[name] = fn
	return api.DisposableFunc(func() { delete(h.hooks, name) }), nil
}

func (h *fakeHost) BindKey(key input.Key, command string) (api.Disposable, error) {
	h.bindings[key] = command
	return api.DisposableFunc(func() { delete(h.bindings, key) }), nil
}

func (h *fakeHost) Subscribe(pattern topic.Topic, fn event.HandlerFunc) (api.Disposable, error) {
	h.subs[pattern] = fn
	return api.DisposableFunc(func() { delete(h.subs, pattern) }), nil
}

// fire delivers a trigger event to the controller.
func (h *fakeHost) fire(ctx context.Context, t topic.Topic) {
	if fn, ok := h.subs[t]; ok {
		_ = fn(ctx, event.New(t, nil, "test"))
	}
}

// typeKey runs the installed hook, if any, and reports the text the host
// would insert ("" when suppressed).
func (h *fakeHost) typeKey(ctx context.Context, text string) (string, bool) {
	ks := &input.Keystroke{Text: text}
	fn, ok := h.hooks[hookName]
	if !ok {
		return ks.Text, true
	}
	if !fn(ctx, ks) {
		return "", false
	}
	return ks.Text, true
}
