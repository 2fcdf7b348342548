package parser

import (
	"fmt"
	"strings"

	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

type Grammar interface {
	// InitialState returns the initial state of a parser.
	InitialState() int

	// Action returns an ACTION entry corresponding to a (state, terminal symbol) pair.
	Action(state int, terminal int) int

	// GoTo returns a GOTO entry corresponding to a (state, non-terminal symbol) pair.
	GoTo(state int, lhs int) int

	// AlternativeSymbolCount returns a symbol count of p production.
	AlternativeSymbolCount(prod int) int

	// LHS returns a LHS symbol of a production.
	LHS(prod int) int

	// TerminalCount returns a terminal symbol count of grammar.
	TerminalCount() int

	// EOF returns the EOF symbol.
	EOF() int

	// StartSymbol returns the start symbol of the grammar the table was built from.
	StartSymbol() int

	// TerminalID returns the terminal standing for a word of a category.
	TerminalID(kindName string, lexeme string) (int, bool)

	// Terminal return a string representation of a terminal symbol.
	Terminal(terminal int) string

	// NonTerminal retuns a string representation of a non-terminal symbol.
	NonTerminal(nonTerminal int) string
}

type VToken interface {
	// TerminalID returns a terminal ID or TerminalIDUnknown.
	TerminalID() int

	// KindName returns the category of the word.
	KindName() string

	// Lexeme returns a lexeme.
	Lexeme() string

	// EOF returns true when a token represents EOF.
	EOF() bool

	// Index returns the position of the word in the source.
	Index() int
}

type TokenStream interface {
	Next() (VToken, error)
}

type SyntaxError struct {
	Index             int
	Message           string
	Token             VToken
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error: word #%v: %v", e.Index, e.Message)
	if e.Token != nil {
		if e.Token.EOF() {
			b.WriteString(": <eof>")
		} else {
			fmt.Fprintf(&b, ": %v %#v", e.Token.KindName(), e.Token.Lexeme())
		}
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

type ParserOption func(p *Parser) error

// SemanticAction registers a set of actions the parser calls while parsing.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// Parser is a shift-reduce recognizer driven by an ACTION/GOTO table.
type Parser struct {
	toks       TokenStream
	gram       Grammar
	stateStack []int
	semAct     SemanticActionSet
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		toks: toks,
		gram: gram,
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse consumes tokens until the input is accepted. It stops at the first word the table has
// no action for and returns a *SyntaxError.
func (p *Parser) Parse() error {
	p.stateStack = p.stateStack[:0]
	p.push(p.gram.InitialState())
	tok, err := p.toks.Next()
	if err != nil {
		return err
	}

	for {
		kind, operand := spec.ActionEntry(p.lookupAction(tok)).Describe()
		switch kind {
		case "shift":
			p.push(operand)
			if p.semAct != nil {
				p.semAct.Shift(tok)
			}

			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
		case "reduce":
			if err := p.reduce(operand); err != nil {
				return err
			}
			if p.semAct != nil {
				p.semAct.Reduce(operand)
			}
		case "accept":
			// A table that accepts on a terminal completes the start production with that
			// terminal, which is shifted but never reduced. Only the end of input may follow it.
			pending := 0
			if !tok.EOF() {
				if p.semAct != nil {
					p.semAct.Shift(tok)
				}
				pending = len(p.stateStack)

				tok, err = p.toks.Next()
				if err != nil {
					return err
				}
				if !tok.EOF() {
					return &SyntaxError{
						Index:             tok.Index(),
						Message:           "unexpected token",
						Token:             tok,
						ExpectedTerminals: []string{p.gram.Terminal(p.gram.EOF())},
					}
				}
			}
			if p.semAct != nil {
				p.semAct.Accept(pending)
			}
			return nil
		default:
			return &SyntaxError{
				Index:             tok.Index(),
				Message:           "unexpected token",
				Token:             tok,
				ExpectedTerminals: p.searchLookahead(p.top()),
			}
		}
	}
}

func (p *Parser) lookupAction(tok VToken) int {
	term := tok.TerminalID()
	if term < 0 || term >= p.gram.TerminalCount() {
		return int(spec.ActionEntryError)
	}
	return p.gram.Action(p.top(), term)
}

func (p *Parser) reduce(prodNum int) error {
	n := p.gram.AlternativeSymbolCount(prodNum)
	if n >= len(p.stateStack) {
		return fmt.Errorf("the state stack is too short to reduce production %v; stack depth: %v, symbols: %v", prodNum, len(p.stateStack), n)
	}
	p.pop(n)
	lhs := p.gram.LHS(prodNum)
	next := p.gram.GoTo(p.top(), lhs)
	if next == int(spec.GoToEntryNil) {
		return fmt.Errorf("no GOTO entry; state: %v, symbol: %v", p.top(), p.gram.NonTerminal(lhs))
	}
	p.push(next - 1)
	return nil
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *Parser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
}

func (p *Parser) searchLookahead(state int) []string {
	kinds := []string{}
	for term := 0; term < p.gram.TerminalCount(); term++ {
		if p.gram.Action(state, term) == int(spec.ActionEntryError) {
			continue
		}
		kinds = append(kinds, p.gram.Terminal(term))
	}
	return kinds
}
