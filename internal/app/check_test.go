package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.md")
	content := "# Title\r\n- one\r\n  * two\r\n+ \r\n-\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	sum, err := Check(path, &out)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if sum.Items != 2 || sum.Blanks != 1 || sum.Other != 3 {
		t.Errorf("summary = %+v", sum)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d output lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[2], "item") || !strings.Contains(lines[2], "indent 2") || !strings.Contains(lines[2], "'*'") {
		t.Errorf("line 3 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "blank") {
		t.Errorf("line 4 = %q", lines[3])
	}
	if !strings.Contains(lines[4], "none") {
		t.Errorf("bare marker line = %q", lines[4])
	}
	if !strings.HasPrefix(lines[6], "6 lines: 2 items, 1 blank bullets") {
		t.Errorf("summary line = %q", lines[6])
	}
}

func TestCheckMissingFile(t *testing.T) {
	_, err := Check(filepath.Join(t.TempDir(), "nope.md"), &bytes.Buffer{})
	var fe *FileError
	if !errors.As(err, &fe) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected FileError wrapping ErrNotExist, got %v", err)
	}
}
