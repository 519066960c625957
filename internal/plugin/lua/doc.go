// Package lua provides the sandboxed Lua runtime used for editor scripts.
//
// This package wraps the gopher-lua library to provide:
//   - a State with only the base, table, string and math libraries
//   - a sandbox that removes file loading and restricts require to
//     preloaded modules
//   - context-bounded execution with an optional timeout
//   - print redirected to a configurable writer
//
// # State
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(5 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	state.PreloadModule("ks", ksLoader)
//	if err := state.DoFile(ctx, "scenario.lua"); err != nil {
//	    return err
//	}
//
// A State is not goroutine-safe. Run independent scripts concurrently by
// giving each goroutine its own State.
package lua
