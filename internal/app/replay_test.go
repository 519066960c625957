package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/autobullet/internal/script"
)

func writeScript(t *testing.T, dir, name, code string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	pass := writeScript(t, dir, "pass.lua", `
local ks = require("ks")
ks.open("* a", "markdown")
ks.key("enter")
ks.expect(ks.line(2), "* ")
print("pass done")
`)
	plain := writeScript(t, dir, "plain.lua", `
local ks = require("ks")
ks.open("* a", "plaintext")
ks.key("enter")
ks.expect(ks.line(2), "")
`)

	var out bytes.Buffer
	results, err := Replay(context.Background(), []string{pass, plain}, ReplayOptions{Out: &out, Parallel: 2})
	if err != nil {
		t.Fatalf("Replay() error = %v\n%s", err, out.String())
	}
	if len(results) != 2 || results[0].Path != pass || results[1].Path != plain {
		t.Fatalf("results out of order: %+v", results)
	}

	report := out.String()
	if !strings.Contains(report, "pass done\nok   "+pass) {
		t.Errorf("report missing script output:\n%s", report)
	}
	if !strings.Contains(report, "ok   "+plain) {
		t.Errorf("report missing %s:\n%s", plain, report)
	}
}

func TestReplayFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.lua", `require("ks").open("", "markdown")`)
	bad := writeScript(t, dir, "bad.lua", `
local ks = require("ks")
ks.open("- ", "markdown")
ks.key("enter")
ks.expect(ks.text(), "- \n- ")
`)

	var out bytes.Buffer
	results, err := Replay(context.Background(), []string{good, bad}, ReplayOptions{Out: &out})
	if !errors.Is(err, ErrReplayFailed) {
		t.Fatalf("expected ErrReplayFailed, got %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("good script failed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, script.ErrExpectation) {
		t.Errorf("bad script error = %v", results[1].Err)
	}
	if !strings.Contains(out.String(), "FAIL "+bad) {
		t.Errorf("report:\n%s", out.String())
	}
}

func TestReplayScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "script", "testdata", "*.lua"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no scenarios: %v", err)
	}

	var out bytes.Buffer
	if _, err := Replay(context.Background(), paths, ReplayOptions{Out: &out}); err != nil {
		t.Fatalf("Replay() error = %v\n%s", err, out.String())
	}
}
