// ==============================================================================================
// FILE: evaluator/diagnostics.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Renders a *object.Signal into the exact user-facing
//          diagnostic line formats (the token/lexeme/line detail a
//          bare Signal.Error() defers, since formatting it needs the
//          source text to re-slice the offending token's lexeme).
// ==============================================================================================

package evaluator

import (
	"fmt"

	"script/object"
)

// FormatDiagnostic renders a terminal *object.Signal (the one
// Interpret returned) as the exact diagnostic line spec.md §6 and
// SPEC_FULL.md §8 specify.
func FormatDiagnostic(sig *object.Signal, source string) string {
	if sig == nil {
		return ""
	}
	lexeme := sig.Token.Lexeme(source)
	switch sig.Kind {
	case object.SigReturn, object.SigBreak, object.SigContinue:
		return fmt.Sprintf("Error interpreting: %s At line: %d", sig.Message, sig.Token.Line)
	default:
		return fmt.Sprintf("Error interpreting `%s` at line %d: %s", lexeme, sig.Token.Line, sig.Message)
	}
}
