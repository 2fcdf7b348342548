package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe [<description file path>]",
		Short:   "Print the DFA of every category of a token description",
		Example: `  tlarc describe lex.yaml`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := pathOrDefault(arg, cfg.Lexical.Description, "description")
	if err != nil {
		return err
	}

	compiled, err := readDescription(path)
	if err != nil {
		return err
	}

	return writeDFAs(os.Stdout, compiled)
}

func writeDFAs(w io.Writer, compiled *lexical.CompiledLex) error {
	for i, d := range compiled.DFAs {
		t := table.NewWriter()
		t.SetTitle(compiled.KindNames[i].String())
		t.AppendHeader(table.Row{"State", "Start", "Accepting", "Transitions"})
		for _, n := range d.Nodes() {
			var start string
			if n.ID == d.Start {
				start = "*"
			}
			var accepting string
			if n.Accepting {
				accepting = "yes"
			}
			t.AppendRow(table.Row{n.ID, start, accepting, transitionsText(n.Trans)})
		}
		if _, err := fmt.Fprintf(w, "%v\n\n", t.Render()); err != nil {
			return err
		}
	}
	return nil
}

func transitionsText(trans map[rune]int) string {
	cs := make([]rune, 0, len(trans))
	for c := range trans {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i] < cs[j]
	})
	ts := make([]string, len(cs))
	for i, c := range cs {
		ts[i] = fmt.Sprintf("%q -> %v", c, trans[c])
	}
	return strings.Join(ts, ", ")
}
