package symbol

import (
	"fmt"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol is a handle of a terminal or non-terminal symbol interned by a SymbolTable.
// A handle is only meaningful together with the table that issued it.
type Symbol uint16

func (s Symbol) String() string {
	kind, num := s.describe()
	var prefix string
	switch {
	case s.IsNil():
		prefix = "?"
	case s == SymbolEOF:
		prefix = "e"
	case s == SymbolEpsilon:
		prefix = "ε"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	default:
		prefix = "t"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskNumberPart = uint16(0x7fff) // 0111 1111 1111 1111

	SymbolNil     = Symbol(0)                     // 0000 0000 0000 0000
	SymbolEOF     = Symbol(maskTerminal | 0x0001) // 1000 0000 0000 0001
	SymbolEpsilon = Symbol(maskTerminal | 0x0002) // 1000 0000 0000 0010

	CategoryEOF     = "EOI"
	CategoryEpsilon = "Epsilon"

	// LiteralAny is the literal of a terminal that stands for every word of its category.
	LiteralAny = ""

	nonTerminalNumMin = SymbolNum(1)
	symbolNumMax      = SymbolNum(maskNumberPart)
)

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	return Symbol(kindMask | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, num := s.describe()
	return num
}

func (s Symbol) IsNil() bool {
	_, num := s.describe()
	return num == 0
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _ := s.describe()
	return kind == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return !s.IsNonTerminal()
}

func (s Symbol) describe() (symbolKind, SymbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	return kind, SymbolNum(uint16(s) & maskNumberPart)
}

type terminalKey struct {
	category string
	literal  string
}

func (k terminalKey) text() string {
	return k.category + "," + k.literal
}

// SymbolTable interns the symbols of one grammar-building session. Terminals are interned
// by their (category, literal) pair and non-terminals by name, so asking for the same
// terminal twice yields the same handle. A table is not safe for concurrent writers.
type SymbolTable struct {
	key2Term     map[terminalKey]Symbol
	name2NT      map[string]Symbol
	termKeys     []terminalKey
	nonTermNames []string
	start        Symbol
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		key2Term: map[terminalKey]Symbol{
			{category: CategoryEOF}:     SymbolEOF,
			{category: CategoryEpsilon}: SymbolEpsilon,
		},
		name2NT: map[string]Symbol{},
		termKeys: []terminalKey{
			{}, // Nil
			{category: CategoryEOF},
			{category: CategoryEpsilon},
		},
		nonTermNames: []string{
			"", // Nil
		},
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

func (w *SymbolTableWriter) RegisterTerminal(category, literal string) (Symbol, error) {
	if category == "" {
		return SymbolNil, fmt.Errorf("a terminal symbol needs a category")
	}
	key := terminalKey{category: category, literal: literal}
	if sym, ok := w.key2Term[key]; ok {
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, SymbolNum(len(w.termKeys)))
	if err != nil {
		return SymbolNil, err
	}
	w.key2Term[key] = sym
	w.termKeys = append(w.termKeys, key)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterNonTerminal(name string) (Symbol, error) {
	if name == "" {
		return SymbolNil, fmt.Errorf("a non-terminal symbol needs a name")
	}
	if sym, ok := w.name2NT[name]; ok {
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, SymbolNum(len(w.nonTermNames)))
	if err != nil {
		return SymbolNil, err
	}
	w.name2NT[name] = sym
	w.nonTermNames = append(w.nonTermNames, name)
	return sym, nil
}

// RegisterStartSymbol registers a non-terminal and designates it as the start symbol.
// The start symbol can be set only once; registering the same name again is a no-op.
func (w *SymbolTableWriter) RegisterStartSymbol(name string) (Symbol, error) {
	sym, err := w.RegisterNonTerminal(name)
	if err != nil {
		return SymbolNil, err
	}
	if !w.start.IsNil() && w.start != sym {
		return SymbolNil, fmt.Errorf("the start symbol is already set; current: %v, passed: %v", w.nonTermNames[w.start.Num()], name)
	}
	w.start = sym
	return sym, nil
}

func (r *SymbolTableReader) LookupTerminal(category, literal string) (Symbol, bool) {
	sym, ok := r.key2Term[terminalKey{category: category, literal: literal}]
	return sym, ok
}

func (r *SymbolTableReader) LookupNonTerminal(name string) (Symbol, bool) {
	sym, ok := r.name2NT[name]
	return sym, ok
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	if sym.IsNil() {
		return "", false
	}
	num := sym.Num().Int()
	if sym.IsTerminal() {
		if num >= len(r.termKeys) {
			return "", false
		}
		return r.termKeys[num].text(), true
	}
	if num >= len(r.nonTermNames) {
		return "", false
	}
	return r.nonTermNames[num], true
}

// TerminalInfo returns the category and the literal of a terminal symbol.
func (r *SymbolTableReader) TerminalInfo(sym Symbol) (string, string, bool) {
	if !sym.IsTerminal() || sym.Num().Int() >= len(r.termKeys) {
		return "", "", false
	}
	k := r.termKeys[sym.Num()]
	return k.category, k.literal, true
}

// TerminalSymbols returns all terminal symbols including EOF and Epsilon in registration order.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(r.termKeys)-1)
	for num := 1; num < len(r.termKeys); num++ {
		syms = append(syms, Symbol(maskTerminal|uint16(num)))
	}
	return syms
}

func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, len(r.nonTermNames)-1)
	for num := nonTerminalNumMin.Int(); num < len(r.nonTermNames); num++ {
		syms = append(syms, Symbol(maskNonTerminal|uint16(num)))
	}
	return syms
}

// TerminalCount returns the number of terminal slots including the nil slot, which is the
// column count of a table indexed by terminal numbers.
func (r *SymbolTableReader) TerminalCount() int {
	return len(r.termKeys)
}

func (r *SymbolTableReader) NonTerminalCount() int {
	return len(r.nonTermNames)
}

func (r *SymbolTableReader) StartSymbol() Symbol {
	return r.start
}
