package hook

import "errors"

// ErrNilHook indicates a nil hook or hook function was registered.
var ErrNilHook = errors.New("hook: nil hook")
