package parser

import (
	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
)

// TerminalIDUnknown is the terminal of a word no terminal of the grammar stands for.
const TerminalIDUnknown = -1

type vToken struct {
	terminalID int
	tok        *lexer.Token
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) KindName() string {
	return t.tok.KindName
}

func (t *vToken) Lexeme() string {
	return t.tok.Lexeme
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Index() int {
	return t.tok.Index
}

type tokenStream struct {
	lex  *lexer.Lexer
	gram Grammar
}

// NewTokenStream maps the tokens of lex to terminals of gram.
func NewTokenStream(gram Grammar, lex *lexer.Lexer) TokenStream {
	return &tokenStream{
		lex:  lex,
		gram: gram,
	}
}

func (s *tokenStream) Next() (VToken, error) {
	tok, err := s.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.EOF {
		return &vToken{
			terminalID: s.gram.EOF(),
			tok:        tok,
		}, nil
	}

	term, ok := s.gram.TerminalID(tok.KindName, tok.Lexeme)
	if !ok {
		term = TerminalIDUnknown
	}
	return &vToken{
		terminalID: term,
		tok:        tok,
	}, nil
}
