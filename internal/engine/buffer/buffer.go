package buffer

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// Buffer holds the text of one document as a slice of lines.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding
	revision   uint64
}

// New creates a buffer with initial content.
// Line endings in text are normalized to the buffer's style. It returns
// ErrInvalidLineEnding if an option set an unknown line ending.
func New(text string, opts ...Option) (*Buffer, error) {
	b := &Buffer{lineEnding: LineEndingLF}
	for _, opt := range opts {
		opt(b)
	}
	if !b.lineEnding.Valid() {
		return nil, ErrInvalidLineEnding
	}
	b.lines = splitLines(text)
	return b, nil
}

// Read Operations

// Text returns the full buffer content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// lineEnding is validated in New and never changes.
	seq, _ := b.lineEnding.Sequence()
	return strings.Join(b.lines, seq)
}

// Lines returns a copy of all lines without terminators.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line without its terminator.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lines) {
		return "", ErrLineOutOfRange
	}
	return b.lines[line], nil
}

// LineRange returns the range covering the full text of a line,
// excluding its terminator.
func (b *Buffer) LineRange(line int) (Range, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lines) {
		return Range{}, ErrLineOutOfRange
	}
	return Range{
		Start: Point{Line: line},
		End:   Point{Line: line, Column: len(b.lines[line])},
	}, nil
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Revision returns a counter incremented by every mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Write Operations

// Insert inserts text at p and returns the point after the inserted text.
func (b *Buffer) Insert(p Point, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkPoint(p); err != nil {
		return Point{}, err
	}
	end := b.replace(Range{Start: p, End: p}, text)
	b.revision++
	return end, nil
}

// DeleteLeft deletes the rune before p, joining p's line with the previous
// one when p is at column 0. It returns the new position of the cursor.
func (b *Buffer) DeleteLeft(p Point) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkPoint(p); err != nil {
		return Point{}, err
	}

	var start Point
	switch {
	case p.Column > 0:
		_, size := utf8.DecodeLastRuneInString(b.lines[p.Line][:p.Column])
		start = Point{Line: p.Line, Column: p.Column - size}
	case p.Line > 0:
		start = Point{Line: p.Line - 1, Column: len(b.lines[p.Line-1])}
	default:
		return p, nil
	}

	b.replace(Range{Start: start, End: p}, "")
	b.revision++
	return start, nil
}

// ApplyEdit applies a single edit and returns the point after the new text.
func (b *Buffer) ApplyEdit(edit Edit) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(edit.Range); err != nil {
		return Point{}, err
	}
	end := b.replace(edit.Range, edit.NewText)
	b.revision++
	return end, nil
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest position first) and must not
// overlap. Nothing is applied if any edit is invalid.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i-1].Range.Start.Before(edits[i].Range.End) {
			return ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if err := b.checkRange(edit.Range); err != nil {
			return err
		}
	}

	for _, edit := range edits {
		b.replace(edit.Range, edit.NewText)
	}
	b.revision++
	return nil
}

// replace swaps the text in r for text. r must be valid.
// Returns the point after the new text.
func (b *Buffer) replace(r Range, text string) Point {
	head := b.lines[r.Start.Line][:r.Start.Column]
	tail := b.lines[r.End.Line][r.End.Column:]

	inserted := splitLines(head + text)
	end := Point{
		Line:   r.Start.Line + len(inserted) - 1,
		Column: len(inserted[len(inserted)-1]),
	}
	inserted[len(inserted)-1] += tail

	lines := make([]string, 0, len(b.lines)-(r.End.Line-r.Start.Line)+len(inserted)-1)
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[r.End.Line+1:]...)
	b.lines = lines

	return end
}

func (b *Buffer) checkPoint(p Point) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrPointOutOfRange
	}
	if p.Column < 0 || p.Column > len(b.lines[p.Line]) {
		return ErrPointOutOfRange
	}
	return nil
}

func (b *Buffer) checkRange(r Range) error {
	if err := b.checkPoint(r.Start); err != nil {
		return err
	}
	if err := b.checkPoint(r.End); err != nil {
		return err
	}
	if r.End.Before(r.Start) {
		return ErrRangeInvalid
	}
	return nil
}
