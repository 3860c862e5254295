// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Implements the runtime execution engine. Recursively walks
//          the AST, threading a *object.Signal out of every statement
//          and expression evaluation as the single non-local-control-
//          flow channel (return/break/continue/error).
// ==============================================================================================

package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"script/ast"
	"script/object"
)

// Evaluator owns one interpreter run: an environment arena seeded with
// the mandatory builtins (and any host-installed natives), the source
// text being evaluated (needed to re-slice token lexemes), and where
// `print` writes.
type Evaluator struct {
	Env    *object.Environment
	Source string
	Out    io.Writer
	log    *logrus.Entry
}

// New builds an Evaluator with a fresh globals frame seeded with the
// mandatory builtins.
func New(source string) *Evaluator {
	env := object.NewEnvironment()
	object.Seed(env)
	return &Evaluator{
		Env:    env,
		Source: source,
		Out:    os.Stdout,
		log:    logrus.WithField("run_id", env.RunID.String()),
	}
}

// Install adds or overwrites a binding in the globals frame — the hook
// a host binary uses to wire in native extensions (see nativefx).
func (e *Evaluator) Install(name string, v object.Value) {
	e.Env.Define(name, v)
}

// Interpret runs a parsed program to completion. Any signal it
// returns — error or an escaped return/break/continue — is terminal:
// the language has no outer function or loop to catch one at top
// level (spec.md §9 Open Question #3). Callers render it for the user
// via FormatDiagnostic.
func (e *Evaluator) Interpret(statements []ast.Statement) *object.Signal {
	for _, stmt := range statements {
		sig := e.execStatement(stmt)
		if sig == nil {
			continue
		}
		switch sig.Kind {
		case object.SigReturn:
			sig.Message = "return"
		case object.SigBreak:
			sig.Message = "break"
		case object.SigContinue:
			sig.Message = "continue"
		}
		return sig
	}
	return nil
}

// withFrame wraps object.Environment.WithFrame with --debug scope
// push/pop tracing.
func (e *Evaluator) withFrame(enclosingIDs []int, bindings map[string]object.Value, fn func() *object.Signal) *object.Signal {
	e.log.Debug("push frame")
	sig := e.Env.WithFrame(enclosingIDs, bindings, fn)
	e.log.Debug("pop frame")
	if sig != nil {
		e.log.Debugf("unwinding signal kind=%d", sig.Kind)
	}
	return sig
}

// CallFunction implements object.Interpreter: it is the seam
// object.Function.Call delegates to, closing the loop without object
// importing evaluator. A call's active scope is hardcoded to
// `[0, new_frame]` — globals plus exactly the call frame — which is
// the mechanism that makes user functions not capture closures.
func (e *Evaluator) CallFunction(fn *object.Function, args []object.Value) (object.Value, *object.Signal) {
	bindings := make(map[string]object.Value, len(fn.Params))
	for i, param := range fn.Params {
		bindings[param] = args[i]
	}

	var result object.Value = object.Nil{}
	sig := e.withFrame([]int{0}, bindings, func() *object.Signal {
		for _, stmt := range fn.Body.Statements {
			sig := e.execStatement(stmt)
			if sig == nil {
				continue
			}
			switch sig.Kind {
			case object.SigReturn:
				result = sig.Value
				return nil
			case object.SigBreak, object.SigContinue:
				return object.NewError(sig.Token, "break/continue is only allowed in loops.")
			default:
				return sig
			}
		}
		return nil
	})
	if sig != nil {
		return nil, sig
	}
	return result, nil
}

// ----------------------------------------------------------------------------------------------
// STATEMENTS
// ----------------------------------------------------------------------------------------------

func (e *Evaluator) execStatement(stmt ast.Statement) *object.Signal {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		_, sig := e.evalExpr(n.Expr)
		return sig

	case *ast.Print:
		v, sig := e.evalExpr(n.Expr)
		if sig != nil {
			return sig
		}
		fmt.Fprintln(e.Out, v.String())
		return nil

	case *ast.Var:
		v, sig := e.evalExpr(n.Initializer)
		if sig != nil {
			return sig
		}
		e.Env.Define(n.Name, v)
		return nil

	case *ast.Block:
		return e.execBlock(n)

	case *ast.If:
		cond, sig := e.evalExpr(n.Cond)
		if sig != nil {
			return sig
		}
		if object.Truthy(cond) {
			return e.execStatement(n.Then)
		}
		if n.Else != nil {
			return e.execStatement(n.Else)
		}
		return nil

	case *ast.While:
		return e.execWhile(n)

	case *ast.For:
		return e.execFor(n)

	case *ast.Function:
		e.Env.Define(n.Name, &object.Function{Name: n.Name, Params: n.Params, Body: n.Body})
		return nil

	case *ast.Return:
		v, sig := e.evalExpr(n.Value)
		if sig != nil {
			return sig
		}
		return object.NewReturn(n.Token, v)

	case *ast.Break:
		return object.NewBreak(n.Token)

	case *ast.Continue:
		return object.NewContinue(n.Token)

	case *ast.Append:
		return e.execAppend(n)

	case *ast.Insert:
		return e.execInsert(n)

	case *ast.Delete:
		return e.execDelete(n)
	}

	return object.NewError(stmt.Tok(), "Unknown statement type %T.", stmt)
}

// execBlock pushes a fresh frame extending the current scope, runs
// every statement, and pops the frame on every exit path.
func (e *Evaluator) execBlock(b *ast.Block) *object.Signal {
	return e.withFrame(e.Env.ActiveIDs(), map[string]object.Value{}, func() *object.Signal {
		for _, stmt := range b.Statements {
			if sig := e.execStatement(stmt); sig != nil {
				return sig
			}
		}
		return nil
	})
}

func (e *Evaluator) execWhile(w *ast.While) *object.Signal {
	for {
		cond, sig := e.evalExpr(w.Cond)
		if sig != nil {
			return sig
		}
		if !object.Truthy(cond) {
			return nil
		}
		sig = e.execStatement(w.Body)
		if sig == nil {
			continue
		}
		switch sig.Kind {
		case object.SigBreak:
			return nil
		case object.SigContinue:
			continue
		default:
			return sig
		}
	}
}

// execFor runs init once in the current scope (the parser wraps a
// For with a non-nil Init in a synthetic Block, so a var declared in
// Init is visible to Cond/Incr/Body without For opening its own
// frame), then loops cond/body/incr. Break stops without running incr;
// continue falls through to incr.
func (e *Evaluator) execFor(f *ast.For) *object.Signal {
	if f.Init != nil {
		if sig := e.execStatement(f.Init); sig != nil {
			return sig
		}
	}
	for {
		cond, sig := e.evalExpr(f.Cond)
		if sig != nil {
			return sig
		}
		if !object.Truthy(cond) {
			return nil
		}

		sig = e.execStatement(f.Body)
		if sig != nil {
			switch sig.Kind {
			case object.SigBreak:
				return nil
			case object.SigContinue:
				// fall through to increment
			default:
				return sig
			}
		}

		if f.Incr != nil {
			if _, sig := e.evalExpr(f.Incr); sig != nil {
				return sig
			}
		}
	}
}

func (e *Evaluator) execAppend(a *ast.Append) *object.Signal {
	target, sig := e.evalExpr(a.Array)
	if sig != nil {
		return sig
	}
	val, sig := e.evalExpr(a.Value)
	if sig != nil {
		return sig
	}
	switch t := target.(type) {
	case *object.Array:
		t.Push(val)
		return nil
	case *object.String:
		s, ok := val.(*object.String)
		if !ok {
			return object.NewError(a.Token, "Can only append a string onto a string.")
		}
		t.Append(s.String())
		return nil
	default:
		return object.NewError(a.Token, "append's first argument must be an array or a string, got %s.", target.Type())
	}
}

func (e *Evaluator) execInsert(ins *ast.Insert) *object.Signal {
	target, sig := e.evalExpr(ins.Index.Target)
	if sig != nil {
		return sig
	}
	idx, sig := e.evalExpr(ins.Index.Index)
	if sig != nil {
		return sig
	}
	val, sig := e.evalExpr(ins.Value)
	if sig != nil {
		return sig
	}

	arr, ok := target.(*object.Array)
	if !ok {
		return object.NewError(ins.Token, "insert's target must be an array, got %s.", target.Type())
	}
	n, ok := idx.(object.Number)
	if !ok {
		return object.NewError(ins.Token, "insert's index must be a number.")
	}
	if !arr.Insert(int(n), val) {
		return object.NewError(ins.Token, "insert index %d out of bounds for length %d.", int(n), arr.Len())
	}
	return nil
}

func (e *Evaluator) execDelete(d *ast.Delete) *object.Signal {
	target, sig := e.evalExpr(d.Index.Target)
	if sig != nil {
		return sig
	}
	idx, sig := e.evalExpr(d.Index.Index)
	if sig != nil {
		return sig
	}

	arr, ok := target.(*object.Array)
	if !ok {
		return object.NewError(d.Token, "delete's target must be an array, got %s.", target.Type())
	}
	n, ok := idx.(object.Number)
	if !ok {
		return object.NewError(d.Token, "delete's index must be a number.")
	}
	if !arr.Delete(int(n)) {
		return object.NewError(d.Token, "delete index %d out of bounds for length %d.", int(n), arr.Len())
	}
	return nil
}

// ----------------------------------------------------------------------------------------------
// EXPRESSIONS
// ----------------------------------------------------------------------------------------------

func (e *Evaluator) evalExpr(expr ast.Expression) (object.Value, *object.Signal) {
	switch n := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(n), nil

	case *ast.Unary:
		return e.evalUnary(n)

	case *ast.Binary:
		return e.evalBinary(n)

	case *ast.Logical:
		return e.evalLogical(n)

	case *ast.Ternary:
		cond, sig := e.evalExpr(n.Cond)
		if sig != nil {
			return nil, sig
		}
		if object.Truthy(cond) {
			return e.evalExpr(n.Then)
		}
		return e.evalExpr(n.Else)

	case *ast.Grouping:
		return e.evalExpr(n.Expr)

	case *ast.Variable:
		return e.Env.Lookup(n.Token, e.Source)

	case *ast.Assign:
		return e.evalAssign(n)

	case *ast.Call:
		return e.evalCall(n)

	case *ast.Struct:
		return e.evalStructLiteral(n)

	case *ast.Array:
		return e.evalArrayLiteral(n)

	case *ast.IndexGet:
		return e.evalIndexGet(n)

	case *ast.IndexSet:
		return e.evalIndexSet(n)

	case *ast.StructGet:
		return e.evalStructGet(n)

	case *ast.StructSet:
		return e.evalStructSet(n)
	}

	return nil, object.NewError(expr.Tok(), "Unknown expression type %T.", expr)
}

func (e *Evaluator) evalLiteral(l *ast.Literal) object.Value {
	switch l.Kind {
	case ast.NumberLiteral:
		return object.Number(l.Number)
	case ast.StringLiteral:
		return object.NewString(l.Str)
	case ast.BoolLiteral:
		return object.Bool(l.Bool)
	default:
		return object.Nil{}
	}
}

func (e *Evaluator) evalUnary(u *ast.Unary) (object.Value, *object.Signal) {
	right, sig := e.evalExpr(u.Right)
	if sig != nil {
		return nil, sig
	}
	switch u.Operator {
	case "-":
		n, ok := right.(object.Number)
		if !ok {
			return nil, object.NewError(u.Token, "Operand must be a number.")
		}
		return -n, nil
	case "!":
		return object.Bool(!object.Truthy(right)), nil
	}
	return nil, object.NewError(u.Token, "Unknown unary operator %q.", u.Operator)
}

func (e *Evaluator) evalBinary(b *ast.Binary) (object.Value, *object.Signal) {
	if b.Operator == "," {
		if _, sig := e.evalExpr(b.Left); sig != nil {
			return nil, sig
		}
		return e.evalExpr(b.Right)
	}

	left, sig := e.evalExpr(b.Left)
	if sig != nil {
		return nil, sig
	}
	right, sig := e.evalExpr(b.Right)
	if sig != nil {
		return nil, sig
	}

	switch b.Operator {
	case "+":
		return evalPlus(b.Token, left, right)
	case "-", "*", "/":
		return evalArith(b.Token, b.Operator, left, right)
	case "<", "<=", ">", ">=":
		return evalComparison(b.Token, b.Operator, left, right)
	case "==":
		return object.Bool(object.Equal(left, right)), nil
	case "!=":
		return object.Bool(!object.Equal(left, right)), nil
	}
	return nil, object.NewError(b.Token, "Unknown binary operator %q.", b.Operator)
}

func (e *Evaluator) evalLogical(l *ast.Logical) (object.Value, *object.Signal) {
	left, sig := e.evalExpr(l.Left)
	if sig != nil {
		return nil, sig
	}
	if l.Operator == "and" {
		if !object.Truthy(left) {
			return left, nil
		}
		return e.evalExpr(l.Right)
	}
	// "or"
	if object.Truthy(left) {
		return left, nil
	}
	return e.evalExpr(l.Right)
}

func (e *Evaluator) evalAssign(a *ast.Assign) (object.Value, *object.Signal) {
	v, ok := a.Target.(*ast.Variable)
	if !ok {
		return nil, object.NewError(a.Token, "Invalid assignment target.")
	}
	val, sig := e.evalExpr(a.Value)
	if sig != nil {
		return nil, sig
	}
	if sig := e.Env.Assign(v.Token, e.Source, val); sig != nil {
		return nil, sig
	}
	return val, nil
}

func (e *Evaluator) evalCall(c *ast.Call) (object.Value, *object.Signal) {
	callee, sig := e.evalExpr(c.Callee)
	if sig != nil {
		return nil, sig
	}

	args := make([]object.Value, len(c.Args))
	for i, a := range c.Args {
		v, sig := e.evalExpr(a)
		if sig != nil {
			return nil, sig
		}
		args[i] = v
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		return nil, object.NewError(c.Token, "Can only call functions, got %s.", callee.Type())
	}
	if callable.Arity() != len(args) {
		return nil, object.NewError(c.Token, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(e, args)
}

func (e *Evaluator) evalStructLiteral(s *ast.Struct) (object.Value, *object.Signal) {
	result := object.NewStruct()
	for _, f := range s.Fields {
		v, sig := e.evalExpr(f.Value)
		if sig != nil {
			return nil, sig
		}
		result.Set(f.Name, v)
	}
	return result, nil
}

func (e *Evaluator) evalArrayLiteral(a *ast.Array) (object.Value, *object.Signal) {
	elements := make([]object.Value, len(a.Elements))
	for i, el := range a.Elements {
		v, sig := e.evalExpr(el)
		if sig != nil {
			return nil, sig
		}
		elements[i] = v
	}
	return object.NewArray(elements), nil
}

func (e *Evaluator) evalIndexGet(ig *ast.IndexGet) (object.Value, *object.Signal) {
	target, sig := e.evalExpr(ig.Target)
	if sig != nil {
		return nil, sig
	}
	idx, sig := e.evalExpr(ig.Index)
	if sig != nil {
		return nil, sig
	}
	return indexGet(ig.Token, target, idx)
}

func (e *Evaluator) evalIndexSet(is *ast.IndexSet) (object.Value, *object.Signal) {
	target, sig := e.evalExpr(is.Target)
	if sig != nil {
		return nil, sig
	}
	idx, sig := e.evalExpr(is.Index)
	if sig != nil {
		return nil, sig
	}
	val, sig := e.evalExpr(is.Value)
	if sig != nil {
		return nil, sig
	}
	return indexSet(is.Token, target, idx, val)
}

func (e *Evaluator) evalStructGet(sg *ast.StructGet) (object.Value, *object.Signal) {
	target, sig := e.evalExpr(sg.Target)
	if sig != nil {
		return nil, sig
	}
	s, ok := target.(*object.Struct)
	if !ok {
		return nil, object.NewError(sg.Token, "Only structs support field access, got %s.", target.Type())
	}
	if v, ok := s.Get(sg.Name); ok {
		return v, nil
	}
	return object.Nil{}, nil
}

func (e *Evaluator) evalStructSet(ss *ast.StructSet) (object.Value, *object.Signal) {
	target, sig := e.evalExpr(ss.Target)
	if sig != nil {
		return nil, sig
	}
	s, ok := target.(*object.Struct)
	if !ok {
		return nil, object.NewError(ss.Token, "Only structs support field assignment, got %s.", target.Type())
	}
	val, sig := e.evalExpr(ss.Value)
	if sig != nil {
		return nil, sig
	}
	s.Set(ss.Name, val)
	return val, nil
}
