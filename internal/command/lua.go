package command

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHandler wraps a Lua source string as a command Handler. Each
// execution runs in a fresh sandboxed state; command arguments are
// exposed to the script as the global `args` table.
//
// gopher-lua's LState is not goroutine-safe, which is why a state is
// created per execution rather than shared.
func ScriptHandler(source string) Handler {
	return func(ctx context.Context, args ...any) error {
		L := lua.NewState(lua.Options{
			SkipOpenLibs: true,
		})
		defer L.Close()
		L.SetContext(ctx)

		openSafeLibraries(L)

		tbl := L.NewTable()
		for _, a := range args {
			tbl.Append(toLua(L, a))
		}
		L.SetGlobal("args", tbl)

		if err := L.DoString(source); err != nil {
			return fmt.Errorf("lua command: %w", err)
		}
		return nil
	}
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// toLua converts a Go argument value into a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		tbl := L.NewTable()
		for _, item := range val {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for k, item := range val {
			tbl.RawSetString(k, toLua(L, item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}
