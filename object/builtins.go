// ==============================================================================================
// FILE: object/builtins.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The seven mandatory native functions seeded into every
//          globals frame: clock, len, array, clone, str, num, and
//          read_to_string.
// ==============================================================================================

package object

import (
	"os"
	"strconv"
	"time"

	"script/token"
)

var noToken = token.Token{}

func builtinError(format string, args ...interface{}) *Signal {
	return NewError(noToken, format, args...)
}

// Builtins is the list of native functions seeded into a fresh globals
// frame, in the order declared.
var Builtins = []struct {
	Name    string
	Builtin *Builtin
}{
	{"clock", &Builtin{BuiltinName: "clock", BuiltinArity: 0, Fn: builtinClock}},
	{"len", &Builtin{BuiltinName: "len", BuiltinArity: 1, Fn: builtinLen}},
	{"array", &Builtin{BuiltinName: "array", BuiltinArity: 2, Fn: builtinArray}},
	{"clone", &Builtin{BuiltinName: "clone", BuiltinArity: 1, Fn: builtinClone}},
	{"str", &Builtin{BuiltinName: "str", BuiltinArity: 1, Fn: builtinStr}},
	{"num", &Builtin{BuiltinName: "num", BuiltinArity: 1, Fn: builtinNum}},
	{"read_to_string", &Builtin{BuiltinName: "read_to_string", BuiltinArity: 1, Fn: builtinReadToString}},
}

// Seed populates a fresh environment's globals frame with every builtin.
func Seed(env *Environment) {
	for _, def := range Builtins {
		env.Define(def.Name, def.Builtin)
	}
}

// builtinClock returns milliseconds since the Unix epoch, mirroring
// native_functions.rs's NativeClock (SystemTime::now().duration_since).
func builtinClock(args []Value) (Value, *Signal) {
	return Number(float64(time.Now().UnixMilli())), nil
}

// builtinLen returns the element/code-point/field count of a String,
// Array, or Struct.
func builtinLen(args []Value) (Value, *Signal) {
	switch v := args[0].(type) {
	case *String:
		return Number(float64(v.Len())), nil
	case *Array:
		return Number(float64(v.Len())), nil
	case *Struct:
		return Number(float64(v.Len())), nil
	default:
		return nil, builtinError("`len` expects a string, array, or struct, got %s.", args[0].Type())
	}
}

// builtinArray builds a fresh array of size n, every slot a deep clone
// of v (ArrayWithLen in native_functions.rs).
func builtinArray(args []Value) (Value, *Signal) {
	n, ok := args[0].(Number)
	if !ok {
		return nil, builtinError("`array`'s first argument must be a number, got %s.", args[0].Type())
	}
	size := int(n)
	if size < 0 {
		return nil, builtinError("`array`'s length must not be negative.")
	}
	elements := make([]Value, size)
	for i := range elements {
		elements[i] = Clone(args[1])
	}
	return NewArray(elements), nil
}

// builtinClone performs a deep structural clone (DeepClone in
// native_functions.rs).
func builtinClone(args []Value) (Value, *Signal) {
	return Clone(args[0]), nil
}

// builtinStr formats any value the way it would display (ToString in
// native_functions.rs).
func builtinStr(args []Value) (Value, *Signal) {
	return NewString(args[0].String()), nil
}

// builtinNum parses a string as a float, yielding Nil on failure
// (ToNum in native_functions.rs).
func builtinNum(args []Value) (Value, *Signal) {
	s, ok := args[0].(*String)
	if !ok {
		return nil, builtinError("`num` expects a string, got %s.", args[0].Type())
	}
	f, err := strconv.ParseFloat(string(s.Runes), 64)
	if err != nil {
		return Nil{}, nil
	}
	return Number(f), nil
}

// builtinReadToString reads a file's entire contents, yielding Nil on
// any I/O error (ReadToString in native_functions.rs).
func builtinReadToString(args []Value) (Value, *Signal) {
	s, ok := args[0].(*String)
	if !ok {
		return nil, builtinError("`read_to_string` expects a path string, got %s.", args[0].Type())
	}
	data, err := os.ReadFile(string(s.Runes))
	if err != nil {
		return Nil{}, nil
	}
	return NewString(string(data)), nil
}
