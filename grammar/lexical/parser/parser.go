package parser

import (
	"fmt"
)

// Parse parses a pattern of the form:
//
//	Expr   := Term ('|' Term)*
//	Term   := Factor+
//	Factor := Atom '*'?
//	Atom   := '(' Expr ')' | '(' ')' | CHAR
//
// Every character other than `(` is literal in atom position, so `*`, `|` and `)` match
// themselves when they start a term.
func Parse(pattern string) (*Node, error) {
	p := &parser{
		src: []rune(pattern),
	}
	return p.parse()
}

type parser struct {
	src []rune
	pos int

	errCause  error
	errDetail string
}

func (p *parser) parse() (root *Node, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			if retErr == ParseErr {
				retErr = &SyntaxError{
					Cause:  p.errCause,
					Detail: p.errDetail,
				}
			}
			return
		}
	}()

	root = p.parseExpr()
	if c, ok := p.peek(); ok && c == ')' {
		p.raiseParseError(synErrGroupNoInitiator, "")
	}
	return root, nil
}

func (p *parser) parseExpr() *Node {
	left := p.parseTerm()
	for p.consume('|') {
		right := p.parseTerm()
		left = newAlternateNode(left, right)
	}
	return left
}

func (p *parser) parseTerm() *Node {
	left := p.parseFactor()
	for {
		c, ok := p.peek()
		if !ok || c == ')' || c == '|' {
			return left
		}
		left = newConcatNode(left, p.parseFactor())
	}
}

func (p *parser) parseFactor() *Node {
	atom := p.parseAtom()
	if p.consume('*') {
		return newClosureNode(atom)
	}
	return atom
}

func (p *parser) parseAtom() *Node {
	c, ok := p.peek()
	if !ok {
		p.raiseParseError(synErrUnexpectedEOF, "")
	}
	p.pos++
	if c != '(' {
		return newCharacterNode(c)
	}

	if p.consume(')') {
		return newEpsilonNode()
	}
	if _, ok := p.peek(); !ok {
		p.raiseParseError(synErrGroupUnclosed, "")
	}
	expr := p.parseExpr()
	if !p.consume(')') {
		p.raiseParseError(synErrGroupUnclosed, "")
	}
	return expr
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) consume(expected rune) bool {
	c, ok := p.peek()
	if !ok || c != expected {
		return false
	}
	p.pos++
	return true
}

func (p *parser) raiseParseError(err error, detail string) {
	p.errCause = err
	if detail == "" {
		detail = fmt.Sprintf("position: %v", p.pos)
	}
	p.errDetail = detail
	panic(ParseErr)
}

// SyntaxError is a failure to parse a pattern.
type SyntaxError struct {
	Cause  error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%v: %v", e.Cause, e.Detail)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}
