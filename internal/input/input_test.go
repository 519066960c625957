package input

import "testing"

func TestKeyFromName(t *testing.T) {
	tests := map[string]Key{
		"Enter":       KeyEnter,
		" backspace ": KeyBackspace,
		"BS":          KeyBackspace,
		"left":        KeyLeft,
		"nope":        KeyNone,
	}
	for name, want := range tests {
		if got := KeyFromName(name); got != want {
			t.Errorf("KeyFromName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestKeyStringRoundTrip(t *testing.T) {
	for _, k := range []Key{KeyEnter, KeyBackspace, KeyDelete, KeyTab, KeyHome, KeyEnd, KeyUp, KeyDown, KeyLeft, KeyRight} {
		if got := KeyFromName(k.String()); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestKeystrokeIsNewline(t *testing.T) {
	if !(&Keystroke{Text: TextNewline}).IsNewline() {
		t.Error("newline keystroke not recognized")
	}
	if (&Keystroke{Text: "\n- "}).IsNewline() {
		t.Error("augmented keystroke must not count as a bare newline")
	}
	var k *Keystroke
	if k.IsNewline() {
		t.Error("nil keystroke reported as newline")
	}
}
