// ==============================================================================================
// FILE: object/object_integration_test.go
// ==============================================================================================
// PURPOSE: Integration tests across value types, environment storage,
//          and the Callable ABI — a struct holding a builtin, an array
//          of structs stored and mutated through an environment
//          binding, and a Function delegating through the Interpreter
//          seam.
// ==============================================================================================

package object

import "testing"

func TestIntegrationStructStoredInEnvironmentIsSharedNotCopied(t *testing.T) {
	person := NewStruct()
	person.Set("name", NewString("Alice"))
	person.Set("age", Number(30))

	env := NewEnvironment()
	env.Define("user", person)

	got, sig := env.Lookup(tok("user"), "user")
	if sig != nil {
		t.Fatalf("FAIL: unexpected signal: %v", sig)
	}
	retrieved, ok := got.(*Struct)
	if !ok {
		t.Fatalf("FAIL: got %T, want *Struct", got)
	}

	// mutate through the retrieved alias
	retrieved.Set("age", Number(31))
	again, _ := env.Lookup(tok("user"), "user")
	if name, _ := again.(*Struct).Get("age"); name != Number(31) {
		t.Errorf("FAIL: struct mutation through one alias was not visible through another — want reference semantics")
	}
}

func TestIntegrationArrayOfStructsPreservesEachElementIndependently(t *testing.T) {
	a := NewStruct()
	a.Set("n", Number(1))
	b := NewStruct()
	b.Set("n", Number(2))
	arr := NewArray([]Value{a, b})

	first, _ := arr.At(0)
	first.(*Struct).Set("n", Number(99))

	second, _ := arr.At(1)
	if v, _ := second.(*Struct).Get("n"); v != Number(2) {
		t.Errorf("FAIL: mutating one array element's struct corrupted a sibling element")
	}
}

// stubInterpreter implements object.Interpreter for testing Function.Call's
// delegation without pulling in the evaluator package.
type stubInterpreter struct {
	called bool
	fn     *Function
	args   []Value
}

func (s *stubInterpreter) CallFunction(fn *Function, args []Value) (Value, *Signal) {
	s.called = true
	s.fn = fn
	s.args = args
	return Number(42), nil
}

func TestIntegrationFunctionCallDelegatesToInterpreter(t *testing.T) {
	fn := &Function{Name: "f", Params: []string{"x"}}
	it := &stubInterpreter{}

	var c Callable = fn
	v, sig := c.Call(it, []Value{Number(1)})
	if sig != nil {
		t.Fatalf("FAIL: unexpected signal: %v", sig)
	}
	if !it.called || it.fn != fn {
		t.Fatal("FAIL: Function.Call did not delegate to Interpreter.CallFunction")
	}
	if v != Number(42) {
		t.Errorf("FAIL: Call() = %v, want 42", v)
	}
}

func TestIntegrationBuiltinDoesNotNeedInterpreter(t *testing.T) {
	var c Callable = &Builtin{
		BuiltinName:  "double",
		BuiltinArity: 1,
		Fn: func(args []Value) (Value, *Signal) {
			return args[0].(Number) * 2, nil
		},
	}
	v, sig := c.Call(nil, []Value{Number(21)})
	if sig != nil {
		t.Fatalf("FAIL: unexpected signal: %v", sig)
	}
	if v != Number(42) {
		t.Errorf("FAIL: Call() = %v, want 42", v)
	}
}
