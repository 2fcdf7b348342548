package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AlrayQiu/TLARCCompiler/grammar"
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	report          *string
	reducePlacement *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table [<grammar file path>]",
		Short:   "Print the ACTION and GOTO tables of a grammar",
		Example: `  tlarc table grammar.yaml --report report.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTable,
	}
	tableFlags.report = cmd.Flags().String("report", "", "write a JSON description of the automaton to this path")
	tableFlags.reducePlacement = cmd.Flags().String("reduce-placement", "", "canonical or post-shift (default from the configuration)")
	rootCmd.AddCommand(cmd)
}

func compileOptions(placement string) ([]grammar.CompileOption, error) {
	p := cfg.reducePlacement()
	if placement != "" {
		var err error
		p, err = grammar.ParseReducePlacement(placement)
		if err != nil {
			return nil, err
		}
	}
	return []grammar.CompileOption{
		grammar.WithReducePlacement(p),
		grammar.WithLogger(logger),
	}, nil
}

func runTable(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := pathOrDefault(arg, cfg.Syntax.Grammar, "grammar")
	if err != nil {
		return err
	}
	gram, err := readGrammar(path)
	if err != nil {
		return err
	}

	opts, err := compileOptions(*tableFlags.reducePlacement)
	if err != nil {
		return err
	}
	if *tableFlags.report != "" {
		opts = append(opts, grammar.EnableReporting())
	}
	tab, report, err := grammar.Compile(gram, opts...)
	if err != nil {
		return err
	}

	if report != nil {
		b, err := json.Marshal(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*tableFlags.report, b, 0644); err != nil {
			return fmt.Errorf("Cannot write the report %s: %w", *tableFlags.report, err)
		}
	}

	return writeParsingTable(os.Stdout, tab)
}

func writeParsingTable(w io.Writer, tab *grammar.ParsingTable) error {
	g := tab.Grammar()
	r := g.SymbolTable().Reader()

	var terms []symbol.Symbol
	for _, sym := range r.TerminalSymbols() {
		if sym == symbol.SymbolEpsilon {
			continue
		}
		terms = append(terms, sym)
	}
	nonTerms := r.NonTerminalSymbols()

	header := table.Row{"State"}
	for _, sym := range terms {
		header = append(header, symbolText(r, sym))
	}
	for _, sym := range nonTerms {
		header = append(header, symbolText(r, sym))
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%v (initial state: %v)", g.Name(), tab.InitialState()))
	t.AppendHeader(header)
	for state := 0; state < tab.StateCount(); state++ {
		row := table.Row{state}
		for _, sym := range terms {
			act := tab.Action(state, sym)
			if act.Type == grammar.ActionTypeError {
				row = append(row, "")
				continue
			}
			row = append(row, act.String())
		}
		for _, sym := range nonTerms {
			next, ok := tab.GoTo(state, sym)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, next)
		}
		t.AppendRow(row)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	for _, p := range g.Productions() {
		if _, err := fmt.Fprintf(w, "%v: %v\n", p.ID(), g.ProductionText(p)); err != nil {
			return err
		}
	}
	return nil
}

func symbolText(r *symbol.SymbolTableReader, sym symbol.Symbol) string {
	if sym == symbol.SymbolEOF {
		return "<eof>"
	}
	if sym.IsNonTerminal() {
		name, _ := r.ToText(sym)
		return name
	}
	cat, lit, _ := r.TerminalInfo(sym)
	if lit == "" {
		return cat
	}
	return cat + ":" + lit
}
