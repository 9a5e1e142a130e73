/*
File    : micron/repl/repl.go
Author  : Micron contributors

Package repl implements Micron's interactive Read-Eval-Print Loop, adapted
from the teacher's repl.Repl (repl/repl.go): same readline-driven line
editing, color scheme, banner/version/prompt configuration, and panic
recovery, but a different execution model underneath. Go-Mix's REPL
re-parses and evaluates one statement per line against a persistent
environment; Micron has no per-statement boundary — its label table is
resolved over the *entire* flat instruction tape, and jumps can address
any line typed so far. So each line the user enters is appended to a
growing source buffer, the whole buffer is re-lexed and re-parsed, labels
are re-resolved over all of it, and the single long-lived vm.Machine is
handed the new (possibly larger) item slice and resumes from wherever its
instruction pointer last stopped.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/micron-lang/micron/lexer"
	"github.com/micron-lang/micron/parser"
	"github.com/micron-lang/micron/vm"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl creates a Repl with the given display configuration.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner and usage hints.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type Micron code and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Labels and jumps may reference any line typed so far.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop until '.exit' or EOF.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	session := newSession(writer, reader)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		session.executeWithRecovery(writer, line)
	}
}

// session is the growing-buffer machine the REPL drives one line at a time.
type session struct {
	source strings.Builder
	m      *vm.Machine
}

func newSession(writer io.Writer, reader io.Reader) *session {
	return &session{m: vm.New(nil, writer, reader)}
}

// executeWithRecovery tentatively appends line to the accumulated source,
// re-lexes and re-parses the whole buffer, and hands the machine its new
// item slice. A lex or parse error rolls the buffer back to what it was
// before this line, so a typo does not wedge every line typed afterward. A
// panic anywhere in this pipeline is caught and reported the way the
// teacher's REPL reports a [RUNTIME ERROR], so a bug in the interpreter
// degrades to an error message instead of killing the session.
func (s *session) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	before := s.source.String()
	s.source.WriteString(line)
	s.source.WriteString("\n")

	tokens, err := lexer.New([]byte(s.source.String())).Lex()
	if err != nil {
		redColor.Fprintf(writer, "[LEXER ERROR] %v\n", err)
		s.source.Reset()
		s.source.WriteString(before)
		return
	}

	p := parser.New(tokens)
	items := p.Parse()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			redColor.Fprintf(writer, "%s\n", e)
		}
		s.source.Reset()
		s.source.WriteString(before)
		return
	}

	s.m.Items = items
	s.m.Labels = vm.BuildLabelTable(items)

	if runErr := s.m.Run(); runErr != nil {
		redColor.Fprintf(writer, "%v\n", runErr)
		// Skip past the item that raised so the next line typed does not
		// immediately re-trigger the same uncaught error.
		s.m.SetIP(s.m.IP() + 1)
		return
	}
}
