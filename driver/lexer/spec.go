package lexer

import (
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/dfa"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

// Engine classifies whole words with one DFA per category.
type Engine struct {
	kindNames []spec.LexKindName
	dfas      []*dfa.DFA
}

func NewEngine(compiled *lexical.CompiledLex) *Engine {
	return &Engine{
		kindNames: compiled.KindNames,
		dfas:      compiled.DFAs,
	}
}

// NewEngineFromSpec restores an engine from compressed transition tables.
func NewEngineFromSpec(s *spec.LexicalSpec) (*Engine, error) {
	compiled, err := lexical.FromSpec(s)
	if err != nil {
		return nil, err
	}
	return NewEngine(compiled), nil
}

// TryMatch returns the first category, in declaration order, whose DFA accepts the whole word.
func (e *Engine) TryMatch(word string) (string, bool) {
	for i, d := range e.dfas {
		if d.Accepts(word) {
			return e.kindNames[i].String(), true
		}
	}
	return "", false
}

func (e *Engine) KindNames() []spec.LexKindName {
	return e.kindNames
}
