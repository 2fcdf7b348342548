package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
	"github.com/AlrayQiu/TLARCCompiler/driver/parser"
	"github.com/AlrayQiu/TLARCCompiler/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <compiled front end path> <test file path>|<test directory path>",
		Short:   "Test a compiled front end against expected syntax trees",
		Example: `  tlarc test front-end.json test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
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

	t := &tester.Tester{
		Engine:  engine,
		Grammar: gram,
		Cases:   tester.ListTestCases(args[1]),
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
