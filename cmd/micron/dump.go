/*
File    : micron/cmd/micron/dump.go
Author  : Micron contributors

dumpItems renders the parsed item sequence as an indented tree, adapted
from the teacher's main.go PrintingVisitor (a standalone AST-dump helper
the teacher kept outside its own parser/eval packages). Micron's node
family is two variants instead of go-mix's dozen AST node kinds, so one
recursive function replaces the teacher's per-node-type Visit methods, but
the indent-by-constant-amount bookkeeping is the same idea.
*/
package main

import (
	"bytes"
	"fmt"

	"github.com/micron-lang/micron/parser"
)

const dumpIndentSize = 2

type dumper struct {
	indent int
	buf    bytes.Buffer
}

func dumpItems(items []parser.Item) string {
	d := &dumper{}
	for i, item := range items {
		d.line(fmt.Sprintf("[%d] %s", i, d.describeItem(item)))
		if item.Call != nil {
			d.indent += dumpIndentSize
			for _, arg := range item.Call.Args {
				d.dumpNode(arg)
			}
			d.indent -= dumpIndentSize
		}
	}
	return d.buf.String()
}

func (d *dumper) describeItem(item parser.Item) string {
	if item.Label != "" {
		return fmt.Sprintf("label %q", item.Label)
	}
	return fmt.Sprintf("call %s", item.Call.Op)
}

func (d *dumper) dumpNode(node parser.Node) {
	switch n := node.(type) {
	case *parser.Literal:
		d.line(fmt.Sprintf("literal %s", n.Value.String()))
	case *parser.Call:
		d.line(fmt.Sprintf("call %s", n.Op))
		d.indent += dumpIndentSize
		for _, arg := range n.Args {
			d.dumpNode(arg)
		}
		d.indent -= dumpIndentSize
	}
}

func (d *dumper) line(s string) {
	for i := 0; i < d.indent; i++ {
		d.buf.WriteByte(' ')
	}
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
}
