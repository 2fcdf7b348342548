package parser

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/compressor"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

type terminalKey struct {
	category string
	literal  string
}

type grammarImpl struct {
	s        *spec.SyntacticSpec
	key2Term map[terminalKey]int
}

// NewGrammar wraps the portable form of a parsing table.
func NewGrammar(s *spec.SyntacticSpec) (*grammarImpl, error) {
	if s == nil {
		return nil, fmt.Errorf("a syntactic specification is required")
	}
	if s.Action == nil || s.GoTo == nil {
		return nil, fmt.Errorf("the parsing table is missing")
	}
	key2Term := map[terminalKey]int{}
	for term, t := range s.Terminals {
		if t == nil || t.Category == "" || term == s.EOFSymbol {
			continue
		}
		key2Term[terminalKey{category: t.Category, literal: t.Literal}] = term
	}
	return &grammarImpl{
		s:        s,
		key2Term: key2Term,
	}, nil
}

func (g *grammarImpl) InitialState() int {
	return g.s.InitialState
}

// Action returns an encoded spec.ActionEntry. Keys outside the table yield an error entry.
func (g *grammarImpl) Action(state int, terminal int) int {
	e, err := compressor.Lookup(g.s.Action, state, terminal)
	if err != nil {
		return int(spec.ActionEntryError)
	}
	return e
}

// GoTo returns an encoded spec.GoToEntry.
func (g *grammarImpl) GoTo(state int, lhs int) int {
	e, err := compressor.Lookup(g.s.GoTo, state, lhs)
	if err != nil {
		return int(spec.GoToEntryNil)
	}
	return e
}

func (g *grammarImpl) AlternativeSymbolCount(prod int) int {
	return g.s.AlternativeSymbolCounts[prod]
}

func (g *grammarImpl) LHS(prod int) int {
	return g.s.LHSSymbols[prod]
}

func (g *grammarImpl) TerminalCount() int {
	return g.s.TerminalCount
}

func (g *grammarImpl) EOF() int {
	return g.s.EOFSymbol
}

func (g *grammarImpl) StartSymbol() int {
	return g.s.StartSymbol
}

// TerminalID looks a word up by its category and its text. A terminal written with the exact
// text is preferred over the one standing for the whole category.
func (g *grammarImpl) TerminalID(kindName string, lexeme string) (int, bool) {
	if term, ok := g.key2Term[terminalKey{category: kindName, literal: lexeme}]; ok {
		return term, true
	}
	term, ok := g.key2Term[terminalKey{category: kindName}]
	return term, ok
}

func (g *grammarImpl) Terminal(terminal int) string {
	if terminal == g.s.EOFSymbol {
		return "<eof>"
	}
	if terminal < 0 || terminal >= len(g.s.Terminals) || g.s.Terminals[terminal] == nil {
		return ""
	}
	t := g.s.Terminals[terminal]
	if t.Literal == "" {
		return t.Category
	}
	return t.Category + ":" + t.Literal
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	if nonTerminal < 0 || nonTerminal >= len(g.s.NonTerminals) {
		return ""
	}
	return g.s.NonTerminals[nonTerminal]
}
