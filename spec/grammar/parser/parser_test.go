package parser

import (
	"strings"
	"testing"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescription(t *testing.T) {
	src := `# categories are tried from top to bottom
Keyword: process|thread
Int: (0|1|2|3|4|5|6|7|8|9)(0|1|2|3|4|5|6|7|8|9)*
Delimiters: "{|}"
`
	root, err := ParseDescription(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, root.Entries, 3)

	assert.Equal(t, &LexEntryNode{Kind: "Keyword", Pattern: "process|thread", Pos: Position{Row: 2, Col: 1}}, root.Entries[0])
	assert.Equal(t, "Int", root.Entries[1].Kind)
	assert.Equal(t, "(0|1|2|3|4|5|6|7|8|9)(0|1|2|3|4|5|6|7|8|9)*", root.Entries[1].Pattern)
	assert.Equal(t, "{|}", root.Entries[2].Pattern)
	assert.Equal(t, 4, root.Entries[2].Pos.Row)
}

func TestParseDescription_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		row     int
	}{
		{
			caption: "an empty document is an error",
			src:     ``,
			cause:   synErrEmptyDescription,
		},
		{
			caption: "a list is not a description",
			src:     "- a\n- b\n",
			cause:   synErrNotMapping,
			row:     1,
		},
		{
			caption: "a pattern must be a scalar",
			src:     "Int: 1\nKeyword:\n  - a\n",
			cause:   synErrPatternNotString,
			row:     3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := ParseDescription(strings.NewReader(tt.src))
			require.Error(t, err)

			var specErr *verr.SpecError
			if errs, ok := err.(verr.SpecErrors); ok {
				require.NotEmpty(t, errs)
				specErr = errs[0]
			} else {
				require.True(t, errors.As(err, &specErr))
			}
			assert.Equal(t, tt.cause, specErr.Cause)
			assert.Equal(t, tt.row, specErr.Row)
		})
	}
}

func TestParseGrammar(t *testing.T) {
	src := `name: process
start: Program
productions:
  - "Program -> Keyword:process Delimiters:{ Body Delimiters:}"
  - "Stmts -> Stmt Stmts | ε"
  - "Stmt -> Identifier CalculatorSign:= Int"
`
	root, err := ParseGrammar(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "process", root.Name)
	assert.Equal(t, "Program", root.Start)
	assert.Equal(t, 2, root.StartPos.Row)
	require.Len(t, root.Productions, 3)

	p := root.Productions[1]
	assert.Equal(t, "Stmts", p.LHS)
	require.Len(t, p.RHS, 2)
	assert.Equal(t, []string{"Stmt", "Stmts"}, p.RHS[0].Symbols)
	assert.Empty(t, p.RHS[1].Symbols)
	assert.Equal(t, 5, p.Pos.Row)
}

func TestParseProduction(t *testing.T) {
	tests := []struct {
		line string
		lhs  string
		alts [][]string
		err  error
	}{
		{
			line: "E -> E CalculatorSign:+ T | T",
			lhs:  "E",
			alts: [][]string{{"E", "CalculatorSign:+", "T"}, {"T"}},
		},
		{
			line: "Sign -> CalculatorSign:| | Epsilon",
			lhs:  "Sign",
			alts: [][]string{{"CalculatorSign:|"}, nil},
		},
		{
			line: "A ->",
			lhs:  "A",
			alts: [][]string{nil},
		},
		{
			line: "A B",
			err:  synErrNoArrow,
		},
		{
			line: " -> a",
			err:  synErrNoProductionName,
		},
		{
			line: "A B -> a",
			err:  synErrInvalidProductionLHS,
		},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			prod, err := ParseProduction(tt.line)
			if tt.err != nil {
				assert.Equal(t, tt.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lhs, prod.LHS)
			require.Len(t, prod.RHS, len(tt.alts))
			for i, alt := range tt.alts {
				assert.Equal(t, alt, prod.RHS[i].Symbols)
			}
		})
	}
}
