// ==============================================================================================
// FILE: object/signal.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The evaluator's unified non-local control flow value. Every
//          statement execution returns either nil (fell through) or a
//          *Signal carrying one of four outcomes, unwinding Go's call
//          stack back to whichever caller is prepared to catch it.
// ==============================================================================================

package object

import (
	"fmt"

	"script/token"
)

// SignalKind tags which of the four non-local control flows a Signal
// carries.
type SignalKind int

const (
	SigError SignalKind = iota
	SigReturn
	SigBreak
	SigContinue
)

// Signal unwinds evaluation of statements and expressions. SigError
// carries a diagnostic message and the token it occurred at; SigReturn
// carries the returned Value; SigBreak/SigContinue carry neither and
// are caught by the nearest enclosing loop.
type Signal struct {
	Kind    SignalKind
	Message string
	Token   token.Token
	Value   Value
}

// NewError builds a SigError signal.
func NewError(tok token.Token, format string, args ...interface{}) *Signal {
	return &Signal{Kind: SigError, Message: fmt.Sprintf(format, args...), Token: tok}
}

// NewReturn builds a SigReturn signal carrying v.
func NewReturn(tok token.Token, v Value) *Signal {
	return &Signal{Kind: SigReturn, Token: tok, Value: v}
}

// NewBreak builds a SigBreak signal.
func NewBreak(tok token.Token) *Signal {
	return &Signal{Kind: SigBreak, Token: tok}
}

// NewContinue builds a SigContinue signal.
func NewContinue(tok token.Token) *Signal {
	return &Signal{Kind: SigContinue, Token: tok}
}

// IsError reports whether s is a non-nil error signal.
func (s *Signal) IsError() bool { return s != nil && s.Kind == SigError }

// Error satisfies the error interface so a *Signal can be returned or
// wrapped anywhere Go code expects one (e.g. from a Callable used
// outside the evaluator, such as a builtin's internal plumbing).
func (s *Signal) Error() string {
	return s.Message
}
