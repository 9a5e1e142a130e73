/*
File    : micron/cmd/micron/main.go
Author  : Micron contributors

Package main is the Micron CLI entry point (spec section 6): `micron
<path>` runs a script to completion, exiting 0 on normal termination (`$`,
falling off the end, or a top-level `r:`) and nonzero on a lex/parse
failure or an uncaught Micron error. It replaces the teacher's hand-rolled
os.Args switch (main/main.go) with a cobra.Command tree, grounded on the
cobra usage the wider example pack converges on for CLI entry points, and
wraps file-read failures with github.com/pkg/errors the way db47h-ngaro's
Forth VM wraps its own fatal I/O errors with a stack trace attached.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/micronerr"
	"github.com/micron-lang/micron/parser"
	"github.com/micron-lang/micron/repl"
	"github.com/micron-lang/micron/vm"
)

const (
	version = "v1.0.0"
	author  = "Micron contributors"
	license = "MIT"
	prompt  = "micron >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
 █▄ ▄█ ▀█▀ ▄▀▀ █▀▄ ▄▀▄ █▄ █
 █ ▀ █  █  █   █▀▄ ▀▄▀ █ ▀█
`
)

var (
	redColor = color.New(color.FgRed)

	traceFlag   bool
	dumpASTFlag bool
)

func main() {
	root := newRootCmd()
	root.AddCommand(newReplCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "micron <path>",
		Short:         "Run a Micron script",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runFile,
	}
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "write a per-step execution trace to stderr")
	cmd.Flags().BoolVar(&dumpASTFlag, "dump-ast", false, "print the parsed instruction tree instead of running it")
	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Micron session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.NewRepl(banner, version, author, line, license, prompt).Start(os.Stdin, os.Stdout)
			return nil
		},
	}
}

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	tokens, err := lexer.New(src).Lex()
	if err != nil {
		redColor.Fprintf(os.Stderr, "[LEXER ERROR] %v\n", err)
		return errors.Wrap(err, "lexing")
	}

	p := parser.New(tokens)
	items := p.Parse()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", e)
		}
		return errors.New("parse failed")
	}

	if dumpASTFlag {
		fmt.Print(dumpItems(items))
		return nil
	}

	m := vm.New(items, os.Stdout, os.Stdin)
	if traceFlag {
		m.SetTracer(os.Stderr)
	}

	if runErr := m.Run(); runErr != nil {
		if merr, ok := runErr.(*micronerr.MicronError); ok {
			redColor.Fprintf(os.Stderr, "[%s] %s\n", merr.Code, merr.Message)
		} else {
			redColor.Fprintf(os.Stderr, "%v\n", runErr)
		}
		return errors.Wrap(runErr, "uncaught")
	}
	return nil
}
