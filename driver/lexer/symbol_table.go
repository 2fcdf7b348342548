package lexer

import (
	"fmt"
	"io"
)

// Result refers to a word by its category and its index in that category's word list.
type Result struct {
	KindName string
	Index    int
}

// SymbolTable keeps the distinct words of every category in order of first appearance.
type SymbolTable struct {
	words   map[string][]string
	results []Result
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		words: map[string][]string{},
	}
}

// StepNextResult interns word in its category and records a reference to it.
func (t *SymbolTable) StepNextResult(kindName string, word string) Result {
	ws := t.words[kindName]
	idx := -1
	for i, w := range ws {
		if w == word {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(ws)
		t.words[kindName] = append(ws, word)
	}
	r := Result{
		KindName: kindName,
		Index:    idx,
	}
	t.results = append(t.results, r)
	return r
}

// Results returns the references in the order words were stepped.
func (t *SymbolTable) Results() []Result {
	return t.results
}

func (t *SymbolTable) Words(kindName string) []string {
	return t.words[kindName]
}

func (t *SymbolTable) Word(r Result) (string, bool) {
	ws := t.words[r.KindName]
	if r.Index < 0 || r.Index >= len(ws) {
		return "", false
	}
	return ws[r.Index], true
}

// Echo writes one `<category,\t index,\t word>` line per reference.
func (t *SymbolTable) Echo(w io.Writer) error {
	for _, r := range t.results {
		word, _ := t.Word(r)
		if _, err := fmt.Fprintf(w, "<%v,\t %v,\t %v>\n", r.KindName, r.Index, word); err != nil {
			return err
		}
	}
	return nil
}

// NewSymbolTableFromTokens steps every token in order.
func NewSymbolTableFromTokens(toks []*Token) *SymbolTable {
	t := NewSymbolTable()
	for _, tok := range toks {
		if tok.EOF {
			continue
		}
		t.StepNextResult(tok.KindName, tok.Lexeme)
	}
	return t
}
