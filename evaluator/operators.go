// ==============================================================================================
// FILE: evaluator/operators.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Per-operator dispatch helpers, split out of evaluator.go the
//          way the teacher separates evalIntegerInfix/evalStringInfix/
//          evalBooleanInfix from the main Eval switch.
// ==============================================================================================

package evaluator

import (
	"script/object"
	"script/token"
)

// evalPlus implements the `+` overload table: Number+Number numeric
// add, and String+String, String+Number, Number+String concatenation.
// Every other combination is a runtime error anchored at the `+`
// token — a String paired with a Bool, Array, Struct, etc. does not
// fall back to stringifying the other operand.
func evalPlus(tok token.Token, left, right object.Value) (object.Value, *object.Signal) {
	if ln, ok := left.(object.Number); ok {
		if rn, ok := right.(object.Number); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(*object.String); ok {
		if _, ok := right.(object.Number); ok {
			return object.NewString(ls.String() + right.String()), nil
		}
		if rs, ok := right.(*object.String); ok {
			return object.NewString(ls.String() + rs.String()), nil
		}
	}
	if rs, ok := right.(*object.String); ok {
		if _, ok := left.(object.Number); ok {
			return object.NewString(left.String() + rs.String()), nil
		}
	}
	return nil, object.NewError(tok, "Operands to `+` must be numbers or strings, got %s and %s.", left.Type(), right.Type())
}

func evalArith(tok token.Token, op string, left, right object.Value) (object.Value, *object.Signal) {
	ln, ok := left.(object.Number)
	if !ok {
		return nil, object.NewError(tok, "Left operand of `%s` must be a number, got %s.", op, left.Type())
	}
	rn, ok := right.(object.Number)
	if !ok {
		return nil, object.NewError(tok, "Right operand of `%s` must be a number, got %s.", op, right.Type())
	}
	switch op {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		// Division by zero yields IEEE-754 +/-Inf or NaN, not an error.
		return ln / rn, nil
	}
	return nil, object.NewError(tok, "Unknown arithmetic operator %q.", op)
}

func evalComparison(tok token.Token, op string, left, right object.Value) (object.Value, *object.Signal) {
	ln, ok := left.(object.Number)
	if !ok {
		return nil, object.NewError(tok, "Left operand of `%s` must be a number, got %s.", op, left.Type())
	}
	rn, ok := right.(object.Number)
	if !ok {
		return nil, object.NewError(tok, "Right operand of `%s` must be a number, got %s.", op, right.Type())
	}
	switch op {
	case "<":
		return object.Bool(ln < rn), nil
	case "<=":
		return object.Bool(ln <= rn), nil
	case ">":
		return object.Bool(ln > rn), nil
	case ">=":
		return object.Bool(ln >= rn), nil
	}
	return nil, object.NewError(tok, "Unknown comparison operator %q.", op)
}

// indexGet implements target[index] for Array (Number index,
// truncated, bounds-checked), String (code-point index, returns a
// one-character String), and Struct (String key, missing key reads
// as Nil rather than erroring).
func indexGet(tok token.Token, target, index object.Value) (object.Value, *object.Signal) {
	switch t := target.(type) {
	case *object.Array:
		n, ok := index.(object.Number)
		if !ok {
			return nil, object.NewError(tok, "Array index must be a number, got %s.", index.Type())
		}
		v, ok := t.At(int(n))
		if !ok {
			return nil, object.NewError(tok, "Index %d out of bounds for array of length %d.", int(n), t.Len())
		}
		return v, nil

	case *object.String:
		n, ok := index.(object.Number)
		if !ok {
			return nil, object.NewError(tok, "String index must be a number, got %s.", index.Type())
		}
		v, ok := t.At(int(n))
		if !ok {
			return nil, object.NewError(tok, "Index %d out of bounds for string of length %d.", int(n), t.Len())
		}
		return v, nil

	case *object.Struct:
		key, ok := index.(*object.String)
		if !ok {
			return nil, object.NewError(tok, "Struct index must be a string, got %s.", index.Type())
		}
		if v, ok := t.Get(key.String()); ok {
			return v, nil
		}
		return object.Nil{}, nil

	default:
		return nil, object.NewError(tok, "Only arrays, strings, and structs support indexing, got %s.", target.Type())
	}
}

// indexSet implements target[index] = value with the same per-type
// rules as indexGet, plus bounds-checked writes; replacing a
// character of a String requires the assigned value also be a String.
func indexSet(tok token.Token, target, index, value object.Value) (object.Value, *object.Signal) {
	switch t := target.(type) {
	case *object.Array:
		n, ok := index.(object.Number)
		if !ok {
			return nil, object.NewError(tok, "Array index must be a number, got %s.", index.Type())
		}
		if !t.Set(int(n), value) {
			return nil, object.NewError(tok, "Index %d out of bounds for array of length %d.", int(n), t.Len())
		}
		return value, nil

	case *object.String:
		n, ok := index.(object.Number)
		if !ok {
			return nil, object.NewError(tok, "String index must be a number, got %s.", index.Type())
		}
		repl, ok := value.(*object.String)
		if !ok {
			return nil, object.NewError(tok, "Can only assign a string into a string index, got %s.", value.Type())
		}
		if !t.ReplaceAt(int(n), repl.Runes) {
			return nil, object.NewError(tok, "Index %d out of bounds for string of length %d.", int(n), t.Len())
		}
		return value, nil

	case *object.Struct:
		key, ok := index.(*object.String)
		if !ok {
			return nil, object.NewError(tok, "Struct index must be a string, got %s.", index.Type())
		}
		t.Set(key.String(), value)
		return value, nil

	default:
		return nil, object.NewError(tok, "Only arrays, strings, and structs support indexed assignment, got %s.", target.Type())
	}
}
