package lua

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// dangerousGlobals are removed from every sandboxed state.
var dangerousGlobals = []string{
	"dofile",     // Load and execute file
	"loadfile",   // Load file as function
	"load",       // Load string as function
	"loadstring", // Load string as function
	"module",     // Legacy module system
}

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L      *lua.LState
	output io.Writer

	// Modules require may load besides the built-in libraries.
	allowed map[string]bool
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, output io.Writer) *Sandbox {
	return &Sandbox{
		L:      L,
		output: output,
		allowed: map[string]bool{
			lua.TabLibName:    true,
			lua.StringLibName: true,
			lua.MathLibName:   true,
		},
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() error {
	for _, name := range dangerousGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	return s.installSafeRequire()
}

// installPrint replaces print with a version writing to the sandbox output.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// installSafeRequire clears the package search paths and replaces require
// with a version that only loads allowed modules.
func (s *Sandbox) installSafeRequire() error {
	pkg, ok := s.L.GetGlobal(lua.LoadLibName).(*lua.LTable)
	if !ok {
		return fmt.Errorf("lua: package library not loaded")
	}
	s.L.SetField(pkg, "path", lua.LString(""))
	s.L.SetField(pkg, "cpath", lua.LString(""))

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !s.allowed[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
	return nil
}

// allow permits require(name).
func (s *Sandbox) allow(name string) {
	s.allowed[name] = true
}

// Allowed reports whether require(name) is permitted.
func (s *Sandbox) Allowed(name string) bool {
	return s.allowed[name]
}
