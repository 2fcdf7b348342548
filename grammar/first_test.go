package grammar

import (
	"testing"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/stretchr/testify/assert"
)

func TestGenFirstSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		lhs     string
		symbols []string
		empty   bool
	}{
		{
			caption: "a nullable non-terminal has the empty flag",
			src:     processGrammarSrc,
			lhs:     "Stmts",
			symbols: []string{"Identifier"},
			empty:   true,
		},
		{
			caption: "FIRST of a sequence starting with a terminal is that terminal",
			src:     processGrammarSrc,
			lhs:     "Program",
			symbols: []string{"Keyword:process"},
		},
		{
			caption: "left recursion terminates",
			src: `
productions:
  - "E -> E Sign:+ T | T"
  - "T -> T Sign:* F | F"
  - "F -> Paren:( E Paren:) | Id"
`,
			lhs:     "E",
			symbols: []string{"Paren:(", "Id"},
		},
		{
			caption: "a chain of nullable symbols contributes every FIRST",
			src: `
productions:
  - "S -> A B C"
  - "A -> a | ε"
  - "B -> b | ε"
  - "C -> c | ε"
`,
			lhs:     "S",
			symbols: []string{"a", "b", "c"},
			empty:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := buildTestGrammar(t, tt.src)
			genSym := newTestSymbolGenerator(t, g)
			fst := genFirstSet(g)

			e := fst.findBySymbol(genSym(tt.lhs))
			var expected []symbol.Symbol
			for _, s := range tt.symbols {
				expected = append(expected, genSym(s))
			}
			sortSymbols(expected)
			assert.Equal(t, expected, e.terminals())
			assert.Equal(t, tt.empty, e.empty)
			assert.Equal(t, tt.empty, e.contains(symbol.SymbolEpsilon))
		})
	}
}

func TestFirstSet_FindBySequence(t *testing.T) {
	g := buildTestGrammar(t, processGrammarSrc)
	genSym := newTestSymbolGenerator(t, g)
	fst := genFirstSet(g)

	e := fst.findBySequence([]symbol.Symbol{genSym("Stmts"), genSym("Delimiters:}")})
	assert.True(t, e.contains(genSym("Identifier")))
	assert.True(t, e.contains(genSym("Delimiters:}")))
	assert.False(t, e.empty)

	e = fst.findBySequence([]symbol.Symbol{genSym("Stmts"), genSym("Stmts")})
	assert.Equal(t, []symbol.Symbol{genSym("Identifier")}, e.terminals())
	assert.True(t, e.empty)

	e = fst.findBySequence(nil)
	assert.Empty(t, e.terminals())
	assert.True(t, e.empty)

	e = fst.findBySymbol(symbol.SymbolEOF)
	assert.Equal(t, []symbol.Symbol{symbol.SymbolEOF}, e.terminals())
}
