package grammar

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarBuilder_Build(t *testing.T) {
	g := buildTestGrammar(t, processGrammarSrc)
	genSym := newTestSymbolGenerator(t, g)

	assert.Equal(t, "process", g.Name())
	assert.Equal(t, genSym("Program"), g.StartSymbol())

	prods := g.Productions()
	require.Len(t, prods, 5)
	texts := make([]string, len(prods))
	for i, p := range prods {
		assert.Equal(t, i, p.ID())
		texts[i] = g.ProductionText(p)
	}
	assert.Equal(t, []string{
		"Program -> Keyword,process Delimiters,{ Body Delimiters,}",
		"Body -> Keyword,thread Delimiters,{ Stmts Delimiters,}",
		"Stmts -> Stmt Stmts",
		"Stmts -> ε",
		"Stmt -> Identifier, CalculatorSign,= Int,",
	}, texts)

	cat, lit, ok := g.SymbolTable().Reader().TerminalInfo(genSym("Identifier"))
	require.True(t, ok)
	assert.Equal(t, "Identifier", cat)
	assert.Equal(t, symbol.LiteralAny, lit)

	start, err := g.StartProduction()
	require.NoError(t, err)
	assert.Equal(t, 0, start.ID())
	assert.Len(t, g.ProductionsOf(genSym("Stmts")), 2)
}

func TestGrammarBuilder_DefaultStart(t *testing.T) {
	g := buildTestGrammar(t, `
productions:
  - "S -> A"
  - "A -> a"
`)
	genSym := newTestSymbolGenerator(t, g)
	assert.Equal(t, genSym("S"), g.StartSymbol())
}

func TestGrammarBuilder_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
	}{
		{
			caption: "the start symbol must have a production",
			src: `
start: Missing
productions:
  - "S -> a"
`,
			cause: semErrUndefinedStart,
		},
		{
			caption: "a terminal needs a category",
			src: `
productions:
  - "S -> :a"
`,
			cause: semErrInvalidSymbol,
		},
		{
			caption: "a production cannot be defined twice",
			src: `
productions:
  - "S -> a b"
  - "S -> a b"
`,
			cause: semErrDuplicateProduction,
		},
		{
			caption: "the end-of-input category is reserved",
			src: `
productions:
  - "S -> a EOI"
`,
			cause: semErrReservedCategory,
		},
		{
			caption: "the epsilon category is reserved",
			src: `
productions:
  - "S -> a Epsilon:e"
`,
			cause: semErrReservedCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := parser.ParseGrammar(strings.NewReader(tt.src))
			require.NoError(t, err)
			b := &GrammarBuilder{
				AST: ast,
			}
			_, err = b.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.cause), "unexpected error: %v", err)

			var specErr *verr.SpecError
			assert.True(t, errors.As(err, &specErr))
		})
	}
}

func TestGrammarBuilder_NoProduction(t *testing.T) {
	b := &GrammarBuilder{}
	_, err := b.Build()
	assert.ErrorIs(t, err, semErrNoProduction)
}

func TestGrammar_AugmentReusesName(t *testing.T) {
	g := buildTestGrammar(t, processGrammarSrc)
	r := g.SymbolTable().Reader()

	aug1, start1, err := g.augment()
	require.NoError(t, err)
	count := r.NonTerminalCount()
	aug2, start2, err := g.augment()
	require.NoError(t, err)

	assert.Equal(t, count, r.NonTerminalCount())
	assert.Equal(t, start1.LHS(), start2.LHS())
	assert.Equal(t, "Program'", aug1.symbolText(aug1.StartSymbol()))
	assert.Equal(t, len(g.Productions())+1, len(aug2.Productions()))
	assert.Equal(t, []symbol.Symbol{g.StartSymbol()}, start2.RHS())
}

func TestGrammar_AugmentAvoidsUsedNames(t *testing.T) {
	g := buildTestGrammar(t, `
productions:
  - "S -> S' a"
  - "S' -> b"
`)
	aug, _, err := g.augment()
	require.NoError(t, err)
	assert.Equal(t, "S''", aug.symbolText(aug.StartSymbol()))
}

func TestGrammar_SetStartSymbol(t *testing.T) {
	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	s, err := w.RegisterNonTerminal("S")
	require.NoError(t, err)
	a, err := w.RegisterNonTerminal("A")
	require.NoError(t, err)
	x, err := w.RegisterTerminal("x", "")
	require.NoError(t, err)

	g := NewGrammar("test", symTab)
	_, err = g.StartProduction()
	assert.ErrorIs(t, err, semErrNoStartSymbol)
	assert.ErrorIs(t, g.SetStartSymbol(x), semErrStartNotNonTerminal)
	require.NoError(t, g.SetStartSymbol(s))
	assert.NoError(t, g.SetStartSymbol(s))
	assert.ErrorIs(t, g.SetStartSymbol(a), semErrStartSymbolIsSet)
	_, err = g.StartProduction()
	assert.ErrorIs(t, err, semErrUndefinedStart)

	_, err = g.AddProduction(x, s)
	assert.Error(t, err)
	p, err := g.AddProduction(s, symbol.SymbolEpsilon)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, "S -> ε", g.ProductionText(p))
}
