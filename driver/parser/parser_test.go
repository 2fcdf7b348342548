package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
	"github.com/AlrayQiu/TLARCCompiler/grammar"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical"
	gpsr "github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	digits  = "(0|1|2|3|4|5|6|7|8|9)"
	letters = "(a|b|c|d|e|h|o|p|r|s|t|x|y)"
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

type testFrontEnd struct {
	engine *lexer.Engine
	gram   Grammar
}

func newTestFrontEnd(t *testing.T, grammarSrc string, opts ...grammar.CompileOption) *testFrontEnd {
	t.Helper()

	compiled, err, cerrs := lexical.Compile(&lexical.LexSpec{
		Entries: []*lexical.LexEntry{
			{Kind: "Keyword", Pattern: "process|thread"},
			{Kind: "Int", Pattern: digits + digits + "*"},
			{Kind: "Identifier", Pattern: letters + letters + "*"},
			{Kind: "Delimiters", Pattern: "{|}"},
			{Kind: "CalculatorSign", Pattern: "=|+"},
		},
	})
	require.NoError(t, err)
	require.Empty(t, cerrs)

	ast, err := gpsr.ParseGrammar(strings.NewReader(grammarSrc))
	require.NoError(t, err)
	b := &grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	tab, _, err := grammar.Compile(g, opts...)
	require.NoError(t, err)
	synSpec, err := tab.Spec()
	require.NoError(t, err)
	gram, err := NewGrammar(synSpec)
	require.NoError(t, err)

	return &testFrontEnd{
		engine: lexer.NewEngine(compiled),
		gram:   gram,
	}
}

func (fe *testFrontEnd) parse(t *testing.T, src string, semAct SemanticActionSet) error {
	t.Helper()

	lex, err := lexer.NewLexer(fe.engine, strings.NewReader(src))
	require.NoError(t, err)
	var opts []ParserOption
	if semAct != nil {
		opts = append(opts, SemanticAction(semAct))
	}
	p, err := NewParser(NewTokenStream(fe.gram, lex), fe.gram, opts...)
	require.NoError(t, err)
	return p.Parse()
}

func TestParser_Parse(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	tests := []struct {
		caption string
		src     string
		reduced []int
	}{
		{
			caption: "one statement",
			src:     "process { thread { x = 1 } }",
			reduced: []int{4, 3, 2, 1, 0},
		},
		{
			caption: "no statement",
			src:     "process { thread { } }",
			reduced: []int{3, 1, 0},
		},
		{
			caption: "two statements across lines with comments",
			src: `# header
process {
	thread {
		x = 1 # first
		y = 42
	}
}`,
			reduced: []int{4, 4, 3, 2, 2, 1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			var reduced []int
			err := fe.parse(t, tt.src, ReduceFunc(func(prodNum int) {
				reduced = append(reduced, prodNum)
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.reduced, reduced)
		})
	}
}

func TestParser_SyntaxError(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	tests := []struct {
		caption  string
		src      string
		index    int
		expected []string
	}{
		{
			caption:  "a missing operand",
			src:      "process { thread { x = } }",
			index:    6,
			expected: []string{"Int"},
		},
		{
			caption:  "a word whose literal the grammar never mentions",
			src:      "process { thread { x + 1 } }",
			index:    5,
			expected: []string{"CalculatorSign:="},
		},
		{
			caption:  "an unterminated input",
			src:      "process { thread { }",
			index:    5,
			expected: []string{"Delimiters:}"},
		},
		{
			caption:  "a trailing word",
			src:      "process { thread { } } }",
			index:    6,
			expected: []string{"<eof>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := fe.parse(t, tt.src, nil)
			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.index, synErr.Index)
			assert.Equal(t, tt.expected, synErr.ExpectedTerminals)
			assert.Contains(t, synErr.Error(), "unexpected token")
		})
	}
}

func TestParser_UnknownWord(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	err := fe.parse(t, "process { thread { x = 4a } }", nil)
	var uwErr *lexer.UnknownWordError
	require.ErrorAs(t, err, &uwErr)
	assert.Equal(t, "4a", uwErr.Word)
}

func TestParser_PostShift(t *testing.T) {
	fe := newTestFrontEnd(t, `
start: Program
productions:
  - "Program -> Keyword:process Delimiters:{ Stmt Delimiters:}"
  - "Stmt -> Identifier CalculatorSign:= Int"
`, grammar.WithReducePlacement(grammar.ReducePlacementPostShift))

	var reduced []int
	err := fe.parse(t, "process { x = 1 }", ReduceFunc(func(prodNum int) {
		reduced = append(reduced, prodNum)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, reduced)

	semAct := NewSyntaxTreeActionSet(fe.gram)
	require.NoError(t, fe.parse(t, "process { x = 1 }", semAct))
	var b bytes.Buffer
	PrintTree(&b, semAct.Tree())
	assert.Equal(t, `Program
├─ Keyword "process"
├─ Delimiters "{"
├─ Stmt
│  ├─ Identifier "x"
│  ├─ CalculatorSign "="
│  └─ Int "1"
└─ Delimiters "}"
`, b.String())
}

func TestParser_PostShiftTrailingWords(t *testing.T) {
	fe := newTestFrontEnd(t, `
start: Program
productions:
  - "Program -> Keyword:process Delimiters:{ Identifier Delimiters:}"
`, grammar.WithReducePlacement(grammar.ReducePlacementPostShift))

	require.NoError(t, fe.parse(t, "process { x }", nil))

	semAct := NewSyntaxTreeActionSet(fe.gram)
	err := fe.parse(t, "process { x } } } x = 1", semAct)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 4, synErr.Index)
	assert.Equal(t, []string{"<eof>"}, synErr.ExpectedTerminals)
	assert.Nil(t, semAct.Tree())
}

func TestSyntaxTreeActionSet(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	semAct := NewSyntaxTreeActionSet(fe.gram)
	require.NoError(t, fe.parse(t, "process { thread { x = 1 } }", semAct))
	require.NotNil(t, semAct.Tree())

	var b bytes.Buffer
	PrintTree(&b, semAct.Tree())
	assert.Equal(t, `Program
├─ Keyword "process"
├─ Delimiters "{"
├─ Body
│  ├─ Keyword "thread"
│  ├─ Delimiters "{"
│  ├─ Stmts
│  │  ├─ Stmt
│  │  │  ├─ Identifier "x"
│  │  │  ├─ CalculatorSign "="
│  │  │  └─ Int "1"
│  │  └─ Stmts
│  └─ Delimiters "}"
└─ Delimiters "}"
`, b.String())

	semAct = NewSyntaxTreeActionSet(fe.gram)
	assert.Error(t, fe.parse(t, "process { }", semAct))
	assert.Nil(t, semAct.Tree())
}

func TestTraceActionSet(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	var b bytes.Buffer
	require.NoError(t, fe.parse(t, "process { thread { } }", NewTraceActionSet(fe.gram, &b)))
	assert.Equal(t, `shift  Keyword:process "process"
shift  Delimiters:{ "{"
shift  Keyword:thread "thread"
shift  Delimiters:{ "{"
reduce 3: Stmts (0 symbols)
shift  Delimiters:} "}"
reduce 1: Body (4 symbols)
shift  Delimiters:} "}"
reduce 0: Program (4 symbols)
ACCEPT
`, b.String())
}

func TestGrammar_TerminalID(t *testing.T) {
	fe := newTestFrontEnd(t, processGrammarSrc)

	_, ok := fe.gram.TerminalID("EOI", "")
	assert.False(t, ok)

	term, ok := fe.gram.TerminalID("Keyword", "process")
	require.True(t, ok)
	assert.Equal(t, "Keyword:process", fe.gram.Terminal(term))

	term, ok = fe.gram.TerminalID("Int", "7")
	require.True(t, ok)
	assert.Equal(t, "Int", fe.gram.Terminal(term))

	_, ok = fe.gram.TerminalID("Keyword", "loop")
	assert.False(t, ok)
}

func TestNewGrammar_Invalid(t *testing.T) {
	_, err := NewGrammar(nil)
	assert.Error(t, err)
}
