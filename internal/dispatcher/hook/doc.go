// Package hook provides priority-ordered keystroke hooks that run before the
// dispatcher's default type handler.
//
// A hook may inspect and modify the pending keystroke. Returning false
// suppresses the default handler; this is how a hook replaces a keystroke
// with its own edit.
//
// Standard priorities:
//
//	1000+   system/critical hooks
//	500-999 framework hooks
//	100-499 plugin hooks
//	0-99    user hooks
package hook
