package main

import (
	"fmt"
	"os"

	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scanFlags = struct {
	description *string
	table       *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "scan <source file path>",
		Short:   "Classify every word of a source text and print the symbol table",
		Example: `  tlarc scan -d lex.yaml main.tkd`,
		Args:    cobra.ExactArgs(1),
		RunE:    runScan,
	}
	scanFlags.description = cmd.Flags().StringP("description", "d", "", "description file path")
	scanFlags.table = cmd.Flags().Bool("table", false, "print the words of every category as a table instead of the word sequence")
	rootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	path, err := pathOrDefault(*scanFlags.description, cfg.Lexical.Description, "description")
	if err != nil {
		return err
	}
	compiled, err := readDescription(path)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read the source file %s: %w", args[0], err)
	}

	engine := lexer.NewEngine(compiled)
	toks, err := lexer.Scan(engine, string(src))
	if err != nil {
		return err
	}
	symTab := lexer.NewSymbolTableFromTokens(toks)

	if !*scanFlags.table {
		return symTab.Echo(os.Stdout)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Category", "Index", "Word"})
	for _, kind := range engine.KindNames() {
		for i, w := range symTab.Words(kind.String()) {
			t.AppendRow(table.Row{kind, i, w})
		}
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}
