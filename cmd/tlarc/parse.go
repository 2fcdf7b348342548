package main

import (
	"fmt"
	"os"

	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
	"github.com/AlrayQiu/TLARCCompiler/driver/parser"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	tree *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <compiled front end path> <source file path>",
		Short:   "Parse a source text with a compiled front end",
		Example: `  tlarc parse front-end.json main.tkd`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the concrete syntax tree instead of the action trace")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	fe, err := readCompiledFrontEnd(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled front end: %w", err)
	}
	if fe.Syntactic == nil {
		return fmt.Errorf("%v has no parsing table", args[0])
	}

	engine, err := lexer.NewEngineFromSpec(fe.Lexical)
	if err != nil {
		return err
	}
	gram, err := parser.NewGrammar(fe.Syntactic)
	if err != nil {
		return err
	}

	src, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("Cannot open the source file %s: %w", args[1], err)
	}
	defer src.Close()
	lex, err := lexer.NewLexer(engine, src)
	if err != nil {
		return err
	}

	var semAct parser.SemanticActionSet
	var treeAct *parser.SyntaxTreeActionSet
	if *parseFlags.tree {
		treeAct = parser.NewSyntaxTreeActionSet(gram)
		semAct = treeAct
	} else {
		semAct = parser.NewTraceActionSet(gram, os.Stdout)
	}

	p, err := parser.NewParser(parser.NewTokenStream(gram, lex), gram, parser.SemanticAction(semAct))
	if err != nil {
		return err
	}
	if err := p.Parse(); err != nil {
		return err
	}

	if treeAct != nil {
		parser.PrintTree(os.Stdout, treeAct.Tree())
	}
	return nil
}
