// Package lua runs user extension scripts in a sandboxed gopher-lua state.
//
// Scripts get the base, table, string and math libraries only; file, OS,
// debug and module loading are unavailable, and the code-loading builtins
// (dofile, loadfile, load, loadstring) are removed. Execution is bounded by
// a context deadline.
//
//	state := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	defer state.Close()
//
//	state.RegisterFunc("symbol", func(L *glua.LState) int { ... })
//	if err := state.DoFile(ctx, "symbols.lua"); err != nil {
//	    return err
//	}
//
// A State is not goroutine-safe; it is created, used and closed on one
// goroutine during startup.
package lua
