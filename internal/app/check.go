package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/autobullet/internal/bullet"
	"github.com/dshills/autobullet/internal/engine/buffer"
)

// CheckSummary counts the lines of each kind.
type CheckSummary struct {
	Items  int
	Blanks int
	Other  int
}

// Lines returns the total number of lines.
func (s CheckSummary) Lines() int {
	return s.Items + s.Blanks + s.Other
}

// Check writes the bullet classification of each line of the file at path.
func Check(path string, out io.Writer) (CheckSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckSummary{}, &FileError{Op: "check", Path: path, Err: err}
	}
	text := string(data)
	buf, err := buffer.New(text, buffer.WithDetectedLineEnding(text))
	if err != nil {
		return CheckSummary{}, &FileError{Op: "check", Path: path, Err: err}
	}
	return CheckLines(buf.Lines(), out), nil
}

// CheckLines writes the classification of lines to out.
func CheckLines(lines []string, out io.Writer) CheckSummary {
	var sum CheckSummary
	for i, line := range lines {
		kind := bullet.Classify(line)
		detail := ""
		switch kind {
		case bullet.KindItem:
			sum.Items++
			prefix, _ := bullet.Parse(line)
			detail = fmt.Sprintf("marker %q indent %d", bullet.Marker(prefix), indentOf(prefix))
		case bullet.KindBlank:
			sum.Blanks++
			detail = "cleared on enter"
		default:
			sum.Other++
		}
		fmt.Fprintf(out, "%4d  %-5s  %-24s  %s\n", i+1, kind, detail, line)
	}
	fmt.Fprintf(out, "%d lines: %d items, %d blank bullets\n", sum.Lines(), sum.Items, sum.Blanks)
	return sum
}

func indentOf(prefix string) int {
	return len(prefix) - len(strings.TrimLeft(prefix, " \t"))
}
