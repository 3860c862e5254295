// ==============================================================================================
// FILE: nativefx/nativefx.go
// ==============================================================================================
// PACKAGE: nativefx
// PURPOSE: Illustrative stand-ins for the host graphics primitives the
//          original implementation FFI-bound straight to raylib
//          (original_source/src/raylib.rs). Concrete cgo bindings are
//          out of scope for the interpreter core (spec.md §1
//          Non-goals); this package gives every one of those natives
//          an in-memory home so object.Callable has something real to
//          dispatch to, and a host binary wanting actual pixels can
//          swap the Canvas implementation without touching the
//          language core.
// ==============================================================================================

package nativefx

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"script/object"
	"script/token"
)

// zeroToken anchors argument-type errors; natives have no call-site
// token to report against, mirroring object's own builtinError.
var zeroToken = token.Token{}

// Canvas is the in-memory stand-in for a raylib window: it records
// draw calls instead of rasterizing them, and prints a colorized trace
// of each frame to Out.
type Canvas struct {
	Out    io.Writer
	Width  int
	Height int
	Title  string
	Open   bool
	Frames int
	calls  []string
}

func NewCanvas(out io.Writer) *Canvas {
	return &Canvas{Out: out}
}

func (c *Canvas) record(format string, args ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

// Install registers every native under the name the original bound it
// to (InitWindow, SetTargetFPS, BeginDrawing, EndDrawing,
// ClearBackground, DrawText, DrawRectangle, WindowShouldClose,
// GetFrameTime, DrawFPS) as an object.Callable in env.
func Install(install func(name string, v object.Value), out io.Writer) *Canvas {
	c := NewCanvas(out)

	install("InitWindow", builtin("InitWindow", 3, c.initWindow))
	install("SetTargetFPS", builtin("SetTargetFPS", 1, c.setTargetFPS))
	install("BeginDrawing", builtin("BeginDrawing", 0, c.beginDrawing))
	install("EndDrawing", builtin("EndDrawing", 0, c.endDrawing))
	install("ClearBackground", builtin("ClearBackground", 1, c.clearBackground))
	install("DrawText", builtin("DrawText", 5, c.drawText))
	install("DrawRectangle", builtin("DrawRectangle", 5, c.drawRectangle))
	install("WindowShouldClose", builtin("WindowShouldClose", 0, c.windowShouldClose))
	install("GetFrameTime", builtin("GetFrameTime", 0, c.getFrameTime))
	install("DrawFPS", builtin("DrawFPS", 2, c.drawFPS))

	return c
}

func builtin(name string, arity int, fn func(args []object.Value) (object.Value, *object.Signal)) *object.Builtin {
	return &object.Builtin{BuiltinName: name, BuiltinArity: arity, Fn: fn}
}

func number(v object.Value, argIndex int, fnName string) (float64, *object.Signal) {
	n, ok := v.(object.Number)
	if !ok {
		return 0, object.NewError(zeroToken, "%s's argument %d must be a number, got %s.", fnName, argIndex, v.Type())
	}
	return float64(n), nil
}

func str(v object.Value, argIndex int, fnName string) (string, *object.Signal) {
	s, ok := v.(*object.String)
	if !ok {
		return "", object.NewError(zeroToken, "%s's argument %d must be a string, got %s.", fnName, argIndex, v.Type())
	}
	return s.String(), nil
}

func (c *Canvas) initWindow(args []object.Value) (object.Value, *object.Signal) {
	w, sig := number(args[0], 0, "InitWindow")
	if sig != nil {
		return nil, sig
	}
	h, sig := number(args[1], 1, "InitWindow")
	if sig != nil {
		return nil, sig
	}
	title, sig := str(args[2], 2, "InitWindow")
	if sig != nil {
		return nil, sig
	}
	c.Width, c.Height, c.Title, c.Open = int(w), int(h), title, true
	c.writeln(color.New(color.FgCyan, color.Bold).Sprintf("[window] %q %dx%d opened", title, int(w), int(h)))
	return object.Nil{}, nil
}

func (c *Canvas) setTargetFPS(args []object.Value) (object.Value, *object.Signal) {
	fps, sig := number(args[0], 0, "SetTargetFPS")
	if sig != nil {
		return nil, sig
	}
	c.writeln(color.New(color.FgCyan).Sprintf("[window] target fps = %d", int(fps)))
	return object.Nil{}, nil
}

func (c *Canvas) beginDrawing(args []object.Value) (object.Value, *object.Signal) {
	c.Frames++
	c.calls = c.calls[:0]
	return object.Nil{}, nil
}

func (c *Canvas) endDrawing(args []object.Value) (object.Value, *object.Signal) {
	for _, call := range c.calls {
		c.writeln(call)
	}
	return object.Nil{}, nil
}

func (c *Canvas) clearBackground(args []object.Value) (object.Value, *object.Signal) {
	rgba, sig := number(args[0], 0, "ClearBackground")
	if sig != nil {
		return nil, sig
	}
	c.record(color.New(color.FgWhite).Sprintf("[clear] 0x%08X", uint32(rgba)))
	return object.Nil{}, nil
}

func (c *Canvas) drawText(args []object.Value) (object.Value, *object.Signal) {
	text, sig := str(args[0], 0, "DrawText")
	if sig != nil {
		return nil, sig
	}
	x, sig := number(args[1], 1, "DrawText")
	if sig != nil {
		return nil, sig
	}
	y, sig := number(args[2], 2, "DrawText")
	if sig != nil {
		return nil, sig
	}
	size, sig := number(args[3], 3, "DrawText")
	if sig != nil {
		return nil, sig
	}
	rgba, sig := number(args[4], 4, "DrawText")
	if sig != nil {
		return nil, sig
	}
	c.record(color.New(color.FgGreen).Sprintf("[text] %q @ (%d,%d) size=%d color=0x%08X", text, int(x), int(y), int(size), uint32(rgba)))
	return object.Nil{}, nil
}

func (c *Canvas) drawRectangle(args []object.Value) (object.Value, *object.Signal) {
	x, sig := number(args[0], 0, "DrawRectangle")
	if sig != nil {
		return nil, sig
	}
	y, sig := number(args[1], 1, "DrawRectangle")
	if sig != nil {
		return nil, sig
	}
	w, sig := number(args[2], 2, "DrawRectangle")
	if sig != nil {
		return nil, sig
	}
	h, sig := number(args[3], 3, "DrawRectangle")
	if sig != nil {
		return nil, sig
	}
	rgba, sig := number(args[4], 4, "DrawRectangle")
	if sig != nil {
		return nil, sig
	}
	c.record(color.New(color.FgYellow).Sprintf("[rect] (%d,%d) %dx%d color=0x%08X", int(x), int(y), int(w), int(h), uint32(rgba)))
	return object.Nil{}, nil
}

func (c *Canvas) windowShouldClose(args []object.Value) (object.Value, *object.Signal) {
	return object.Bool(!c.Open), nil
}

func (c *Canvas) getFrameTime(args []object.Value) (object.Value, *object.Signal) {
	return object.Number(1.0 / 60.0), nil
}

func (c *Canvas) drawFPS(args []object.Value) (object.Value, *object.Signal) {
	x, sig := number(args[0], 0, "DrawFPS")
	if sig != nil {
		return nil, sig
	}
	y, sig := number(args[1], 1, "DrawFPS")
	if sig != nil {
		return nil, sig
	}
	c.record(color.New(color.FgMagenta).Sprintf("[fps] @ (%d,%d)", int(x), int(y)))
	return object.Nil{}, nil
}

func (c *Canvas) writeln(s string) {
	if c.Out == nil {
		return
	}
	fmt.Fprintln(c.Out, s)
}
