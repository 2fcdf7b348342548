package grammar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
	"github.com/stretchr/testify/require"
)

const processGrammarSrc = `
name: process
start: Program
productions:
  - "Program -> Keyword:process Delimiters:{ Body Delimiters:}"
  - "Body -> Keyword:thread Delimiters:{ Stmts Delimiters:}"
  - "Stmts -> Stmt Stmts | ε"
  - "Stmt -> Identifier CalculatorSign:= Int"
`

func buildTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.ParseGrammar(strings.NewReader(src))
	require.NoError(t, err)
	b := &GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

type testSymbolGenerator func(text string) symbol.Symbol

// newTestSymbolGenerator resolves `Name` to a non-terminal when one exists and otherwise
// resolves `Category[:literal]` to a terminal.
func newTestSymbolGenerator(t *testing.T, g *Grammar) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		r := g.SymbolTable().Reader()
		if sym, ok := r.LookupNonTerminal(text); ok {
			return sym
		}
		cat, lit, _ := strings.Cut(text, ":")
		sym, ok := r.LookupTerminal(cat, lit)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

// runTable drives a table over a terminal sequence and returns the production IDs in the order
// they were reduced.
func runTable(t *testing.T, tab *ParsingTable, input []symbol.Symbol) ([]int, error) {
	t.Helper()

	toks := make([]symbol.Symbol, 0, len(input)+1)
	toks = append(toks, input...)
	toks = append(toks, symbol.SymbolEOF)

	stack := []int{tab.InitialState()}
	var reduced []int
	pos := 0
	for {
		act := tab.Action(stack[len(stack)-1], toks[pos])
		switch act.Type {
		case ActionTypeShift:
			stack = append(stack, act.State)
			pos++
		case ActionTypeReduce:
			prod, ok := tab.Grammar().Production(act.Production)
			require.True(t, ok)
			stack = stack[:len(stack)-prod.Len()]
			next, ok := tab.GoTo(stack[len(stack)-1], prod.LHS())
			if !ok {
				return reduced, fmt.Errorf("no goto; state: %v, symbol: %v", stack[len(stack)-1], prod.LHS())
			}
			stack = append(stack, next)
			reduced = append(reduced, act.Production)
		case ActionTypeAccept:
			return reduced, nil
		default:
			return reduced, fmt.Errorf("unexpected symbol at %v: %v", pos, toks[pos])
		}
	}
}
