// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface.
//          It connects the user input stream to the pipeline (Lexer->Parser->Evaluator)
//          and manages the persistent session state across lines.
// ==============================================================================================

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"script/evaluator"
	"script/lexer"
	"script/parser"
)

// ----------------------------------------------------------------------------
// UI CONSTANTS & CONFIGURATION
// ----------------------------------------------------------------------------

const (
	PROMPT = ">> "
	LOGO   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ____            _       _                         ┃
┃ / ___|  ___ _ __(_)_ __ | |_                        ┃
┃ \___ \ / __| '__| | '_ \| __|                       ┃
┃  ___) | (__| |  | | |_) | |_                        ┃
┃ |____/ \___|_|  |_| .__/ \__|                       ┃
┃                   |_|                               ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	dimColor  = color.New(color.FgHiBlack)
	headColor = color.New(color.FgCyan, color.Bold)
)

// Start launches the Read-Eval-Print Loop. It reads lines from in,
// evaluates each against a session-persistent Evaluator, and writes
// results to out. `in` need not be a real terminal — readline falls
// back to plain line reads when it isn't one, which is what makes this
// usable for piped/scripted sessions and tests alike.
func Start(in io.Reader, out io.Writer) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: headColor.Sprint(PROMPT),
		Stdin:  io.NopCloser(in),
		Stdout: out,
	})
	if err != nil {
		fmt.Fprintln(out, errColor.Sprint("Couldn't start the line reader: "+err.Error()))
		return
	}
	defer rl.Close()

	fmt.Fprint(out, LOGO)
	printHelp(out)

	source := ""
	eval := evaluator.New(source)
	eval.Out = out
	debugMode := false

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".exit":
				fmt.Fprintln(out, dimColor.Sprint("Goodbye!"))
				return
			case ".clear":
				eval = evaluator.New("")
				eval.Out = out
				fmt.Fprintln(out, okColor.Sprint("Environment cleared (memory reset)."))
			case ".debug":
				debugMode = !debugMode
				status := "DISABLED"
				if debugMode {
					status = "ENABLED"
				}
				fmt.Fprintln(out, dimColor.Sprintf("Debug mode %s", status))
			case ".help":
				printHelp(out)
			default:
				fmt.Fprintln(out, errColor.Sprintf("Unknown command: %s. Type .help for info.", line))
			}
			continue
		}

		if debugMode {
			printTokens(out, line)
		}

		eval.Source = line
		tokens, scanErr := lexer.ScanAll(line)
		if scanErr != nil {
			fmt.Fprintln(out, errColor.Sprint(scanErr.Error()))
			continue
		}

		p := parser.New(tokens, line)
		stmts := p.ParseProgram()
		if p.HadError() {
			printParserErrors(out, p.Errors())
			continue
		}

		sig := eval.Interpret(stmts)
		if sig != nil {
			fmt.Fprintln(out, errColor.Sprint(evaluator.FormatDiagnostic(sig, line)))
		}
	}
}

// ----------------------------------------------------------------------------
// HELPER FUNCTIONS
// ----------------------------------------------------------------------------

func printHelp(out io.Writer) {
	fmt.Fprintln(out, dimColor.Sprint("Commands:"))
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .clear  Reset memory")
	fmt.Fprintln(out, "  .debug  Toggle verbose token output")
	fmt.Fprintln(out, "  .help   Show this message")
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, line string) {
	fmt.Fprintln(out, dimColor.Sprint("┌── [ TOKENS ] ──────────────────────────────────────────┐"))
	tokens, err := lexer.ScanAll(line)
	if err != nil {
		fmt.Fprintln(out, errColor.Sprint(err.Error()))
		return
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "│ %-15s : %q\n", tok.Type, tok.Lexeme(line))
	}
	fmt.Fprintln(out, dimColor.Sprint("└────────────────────────────────────────────────────────┘"))
}

func printParserErrors(out io.Writer, errs []error) {
	fmt.Fprintln(out, errColor.Sprint("Whoops! Parser Errors:"))
	for _, msg := range errs {
		fmt.Fprintf(out, errColor.Sprint("  ✖ %s\n"), msg.Error())
	}
}
