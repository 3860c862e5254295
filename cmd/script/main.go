// ==============================================================================================
// FILE: cmd/script/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: CLI entry point. Bare invocation starts the REPL; a single
//          path argument runs that file; --debug turns on scope push/pop
//          tracing to stderr for either mode, and in file mode also a
//          token and AST dump.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"script/evaluator"
	"script/lexer"
	"script/nativefx"
	"script/parser"
	"script/repl"
)

var argsRoot struct {
	debug bool
}

var cmdRoot = &cobra.Command{
	Use:   "script [path]",
	Short: "Run the Script language REPL or a source file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if argsRoot.debug {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		logrus.SetOutput(os.Stderr)

		if len(args) == 1 {
			return runFile(args[0])
		}
		repl.Start(os.Stdin, os.Stdout)
		return nil
	},
}

func main() {
	cmdRoot.PersistentFlags().BoolVar(&argsRoot.debug, "debug", false, "trace scope push/pop (and, in file mode, tokens and AST) to stderr")
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFile(path string) error {
	runID := uuid.New()
	log := logrus.WithField("run_id", runID.String())

	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := errors.Wrap(err, "read source file")
		log.Debug(wrapped)
		fmt.Fprintf(os.Stderr, "ERROR: Couldn't read file: %s\n", err)
		return nil
	}
	source := string(data)

	tokens, err := lexer.ScanAll(source)
	if err != nil {
		fmt.Println(err)
		return nil
	}
	for _, tok := range tokens {
		log.Debugf("token %s %q line %d", tok.Type, tok.Lexeme(source), tok.Line)
	}

	p := parser.New(tokens, source)
	stmts := p.ParseProgram()
	if p.HadError() {
		for _, perr := range p.Errors() {
			fmt.Println(perr)
		}
		return nil
	}
	for _, stmt := range stmts {
		log.Debugf("ast %s", stmt.String())
	}

	ev := evaluator.New(source)
	nativefx.Install(ev.Install, ev.Out)

	if sig := ev.Interpret(stmts); sig != nil {
		fmt.Println(evaluator.FormatDiagnostic(sig, source))
	}
	return nil
}
