package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals are base-library functions that load code from disk or
// strings and would let a script escape the sandbox.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// openSafeLibraries opens only the libraries a data script needs.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug, package and channel are intentionally not opened.
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
