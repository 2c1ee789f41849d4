package command

import (
	"context"
	"testing"
)

func TestScriptHandlerRuns(t *testing.T) {
	h := ScriptHandler(`x = 1 + 1`)

	if err := h(context.Background()); err != nil {
		t.Fatalf("handler error = %v", err)
	}
}

func TestScriptHandlerReceivesArgs(t *testing.T) {
	// The script fails unless the args table holds what we passed.
	h := ScriptHandler(`
		if args[1] ~= "alpha" then error("bad arg 1: " .. tostring(args[1])) end
		if args[2] ~= 42 then error("bad arg 2") end
		if args[3] ~= true then error("bad arg 3") end
	`)

	if err := h(context.Background(), "alpha", 42, true); err != nil {
		t.Fatalf("handler error = %v", err)
	}
}

func TestScriptHandlerSyntaxError(t *testing.T) {
	h := ScriptHandler(`this is not lua`)

	if err := h(context.Background()); err == nil {
		t.Fatal("handler error = nil for invalid source")
	}
}

func TestScriptHandlerRuntimeError(t *testing.T) {
	h := ScriptHandler(`error("deliberate")`)

	if err := h(context.Background()); err == nil {
		t.Fatal("handler error = nil for failing script")
	}
}

func TestScriptHandlerSandbox(t *testing.T) {
	// os and io stay closed in the sandbox.
	h := ScriptHandler(`os.execute("true")`)

	if err := h(context.Background()); err == nil {
		t.Fatal("handler error = nil for os access")
	}
}

func TestScriptHandlerInRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("script", ScriptHandler(`y = args[1]`)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Execute(context.Background(), "script", "value"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}
