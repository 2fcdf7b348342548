package lexer

import (
	"fmt"
	"io"
	"strings"
)

// Token representes a classified word.
type Token struct {
	// KindName is the category the word belongs to.
	KindName string

	// Index is the position of the word among all words of the source.
	Index int

	// Lexeme is the word itself.
	Lexeme string

	// When this field is true, it means the token is the EOF token.
	EOF bool
}

// UnknownWordError means no category accepts a word. Scanning cannot continue past it.
type UnknownWordError struct {
	Word  string
	Index int
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("unknown word: %v (word #%v)", e.Word, e.Index)
}

// Lexer splits preprocessed source on white space and classifies every word.
type Lexer struct {
	engine *Engine
	words  []string
	next   int
}

// NewLexer returns a new lexer. The whole source is read and preprocessed up front.
func NewLexer(engine *Engine, src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		engine: engine,
		words:  strings.Fields(Preprocess(string(b))),
	}, nil
}

// Next returns the next token. After the last word it keeps returning the EOF token.
func (l *Lexer) Next() (*Token, error) {
	if l.next >= len(l.words) {
		return &Token{
			Index: len(l.words),
			EOF:   true,
		}, nil
	}

	idx := l.next
	word := l.words[idx]
	kind, ok := l.engine.TryMatch(word)
	if !ok {
		return nil, &UnknownWordError{
			Word:  word,
			Index: idx,
		}
	}
	l.next++

	return &Token{
		KindName: kind,
		Index:    idx,
		Lexeme:   word,
	}, nil
}

// Scan classifies every word of src and stops at the first unknown word.
func Scan(engine *Engine, src string) ([]*Token, error) {
	l, err := NewLexer(engine, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
