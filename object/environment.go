// ==============================================================================================
// FILE: object/environment.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The environment arena. Frames live in a contiguous,
//          indexable store (not a chain of pointers); a scope is simply
//          a list of frame ids, searched innermost-first. Function
//          calls deliberately reset that list to [globals, new frame],
//          discarding the caller's locals — this is the mechanism that
//          makes user functions non-closing-over.
// ==============================================================================================

package object

import (
	"github.com/google/uuid"

	"script/token"
)

// Environment owns the arena of frames (one map per lexical scope ever
// entered) and the caller's current view into it (the active id list).
type Environment struct {
	RunID  uuid.UUID
	frames []map[string]Value
	ids    []int
}

// NewEnvironment allocates a fresh arena with a single globals frame
// (id 0) and an active scope of just that frame.
func NewEnvironment() *Environment {
	return &Environment{
		RunID:  uuid.New(),
		frames: []map[string]Value{make(map[string]Value)},
		ids:    []int{0},
	}
}

// ActiveIDs returns the caller's current scope chain, innermost last.
// Block statements extend this (pass it straight to WithFrame); a
// function call discards it and hardcodes []int{0} instead.
func (e *Environment) ActiveIDs() []int {
	ids := make([]int, len(e.ids))
	copy(ids, e.ids)
	return ids
}

// WithFrame pushes a new frame onto the arena seeded with bindings,
// builds the active scope as enclosingIDs plus the new frame's id,
// swaps it in as the current scope, runs fn, then restores the caller's
// scope and pops the frame — on every exit path, including one where fn
// returns a Signal that unwinds further. This mirrors a genuine
// push/pop call-stack discipline rather than a never-shrinking arena.
func (e *Environment) WithFrame(enclosingIDs []int, bindings map[string]Value, fn func() *Signal) *Signal {
	if bindings == nil {
		bindings = make(map[string]Value)
	}
	newID := len(e.frames)
	e.frames = append(e.frames, bindings)

	savedIDs := e.ids
	scope := make([]int, len(enclosingIDs)+1)
	copy(scope, enclosingIDs)
	scope[len(enclosingIDs)] = newID
	e.ids = scope

	sig := fn()

	e.ids = savedIDs
	e.frames = e.frames[:newID]
	return sig
}

// Lookup searches the active scope innermost-first.
func (e *Environment) Lookup(name token.Token, source string) (Value, *Signal) {
	lexeme := name.Lexeme(source)
	for i := len(e.ids) - 1; i >= 0; i-- {
		if v, ok := e.frames[e.ids[i]][lexeme]; ok {
			return v, nil
		}
	}
	return nil, NewError(name, "Undefined variable `%s`.", lexeme)
}

// Assign overwrites the nearest existing binding for name in the active
// scope; it does not create a new binding (use Define for that).
func (e *Environment) Assign(name token.Token, source string, value Value) *Signal {
	lexeme := name.Lexeme(source)
	for i := len(e.ids) - 1; i >= 0; i-- {
		if _, ok := e.frames[e.ids[i]][lexeme]; ok {
			e.frames[e.ids[i]][lexeme] = value
			return nil
		}
	}
	return NewError(name, "Undefined variable `%s`.", lexeme)
}

// Define binds name to value in the innermost active frame, shadowing
// any outer binding of the same name for the remainder of that frame's
// lifetime.
func (e *Environment) Define(name string, value Value) {
	e.frames[e.ids[len(e.ids)-1]][name] = value
}
