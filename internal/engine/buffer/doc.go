// Package buffer provides a thread-safe, line-oriented text buffer used as
// the document model of the headless editor host.
//
// The buffer stores text as a slice of lines without terminators and
// remembers the document's line ending so that Text can reproduce it.
// Line endings in inserted text are normalized on the way in.
//
// Basic usage:
//
//	buf, err := buffer.New("- Lorem Ipsum", buffer.WithLineEnding(buffer.LineEndingCRLF))
//	if err != nil {
//	    return err
//	}
//
//	end, _ := buf.Insert(buffer.Point{Line: 0, Column: 13}, "\n- ")
//	// end == (1:2), buf.Text() == "- Lorem Ipsum\r\n- "
//
// Position Types:
//
//   - Point: line and column (0-indexed, column in bytes)
//   - Range: half-open span between two points
//
// Edits applied with ApplyEdits are validated before any mutation; either
// every edit is applied or none is.
package buffer
