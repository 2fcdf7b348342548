package grammar

import (
	"fmt"
	"strings"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
	"go.uber.org/multierr"
)

// Grammar is a named collection of productions sharing one symbol table.
type Grammar struct {
	name   string
	symTab *symbol.SymbolTable
	prods  *productionSet
	start  symbol.Symbol
}

func NewGrammar(name string, symTab *symbol.SymbolTable) *Grammar {
	return &Grammar{
		name:   name,
		symTab: symTab,
		prods:  newProductionSet(),
	}
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) SymbolTable() *symbol.SymbolTable {
	return g.symTab
}

// AddProduction appends `lhs -> rhs` and assigns it the next production ID.
func (g *Grammar) AddProduction(lhs symbol.Symbol, rhs ...symbol.Symbol) (*Production, error) {
	prod, err := newProduction(g.prods.nextID(), lhs, rhs)
	if err != nil {
		return nil, err
	}
	if !g.prods.append(prod) {
		return nil, semErrDuplicateProduction
	}
	return prod, nil
}

// SetStartSymbol designates the start symbol. It can be set only once.
func (g *Grammar) SetStartSymbol(sym symbol.Symbol) error {
	if !sym.IsNonTerminal() {
		return semErrStartNotNonTerminal
	}
	if !g.start.IsNil() && g.start != sym {
		return semErrStartSymbolIsSet
	}
	g.start = sym
	return nil
}

func (g *Grammar) StartSymbol() symbol.Symbol {
	return g.start
}

func (g *Grammar) EOF() symbol.Symbol {
	return symbol.SymbolEOF
}

func (g *Grammar) Epsilon() symbol.Symbol {
	return symbol.SymbolEpsilon
}

// Productions returns all productions ordered by ID.
func (g *Grammar) Productions() []*Production {
	return g.prods.getAllProductions()
}

// ProductionsOf returns the alternatives of a non-terminal. A non-terminal without
// productions yields nil.
func (g *Grammar) ProductionsOf(lhs symbol.Symbol) []*Production {
	return g.prods.findByLHS(lhs)
}

func (g *Grammar) Production(id int) (*Production, bool) {
	return g.prods.findByID(id)
}

// StartProduction returns the first production of the start symbol.
func (g *Grammar) StartProduction() (*Production, error) {
	if g.start.IsNil() {
		return nil, semErrNoStartSymbol
	}
	prods := g.prods.findByLHS(g.start)
	if len(prods) == 0 {
		return nil, semErrUndefinedStart
	}
	return prods[0], nil
}

func (g *Grammar) symbolText(sym symbol.Symbol) string {
	text, ok := g.symTab.Reader().ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

// ProductionText formats a production as `LHS -> sym sym`.
func (g *Grammar) ProductionText(prod *Production) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", g.symbolText(prod.lhs))
	if prod.isEmpty() {
		b.WriteString(" ε")
	}
	for _, sym := range prod.rhs {
		fmt.Fprintf(&b, " %v", g.symbolText(sym))
	}
	return b.String()
}

// augment returns a copy of the grammar with a fresh start production `S' -> S` whose LHS is
// the new start symbol. The copy shares the symbol table.
func (g *Grammar) augment() (*Grammar, *Production, error) {
	if g.start.IsNil() {
		return nil, nil, semErrNoStartSymbol
	}
	if len(g.prods.findByLHS(g.start)) == 0 {
		return nil, nil, semErrUndefinedStart
	}

	r := g.symTab.Reader()
	name := g.symbolText(g.start) + "'"
	for {
		// A name left behind by an earlier augmentation of the same table can be reused.
		sym, exists := r.LookupNonTerminal(name)
		if !exists || !g.uses(sym) {
			break
		}
		name += "'"
	}
	augStart, err := g.symTab.Writer().RegisterNonTerminal(name)
	if err != nil {
		return nil, nil, err
	}

	aug := NewGrammar(g.name, g.symTab)
	for _, p := range g.prods.getAllProductions() {
		if _, err := aug.AddProduction(p.lhs, p.rhs...); err != nil {
			return nil, nil, err
		}
	}
	startProd, err := aug.AddProduction(augStart, g.start)
	if err != nil {
		return nil, nil, err
	}
	aug.start = augStart

	return aug, startProd, nil
}

func (g *Grammar) uses(sym symbol.Symbol) bool {
	for _, p := range g.prods.getAllProductions() {
		if p.lhs == sym {
			return true
		}
		for _, s := range p.rhs {
			if s == sym {
				return true
			}
		}
	}
	return false
}

const literalSeparator = ":"

// GrammarBuilder turns a parsed grammar file into a Grammar. Every symbol that appears on a
// left-hand side is a non-terminal; any other symbol is a terminal written as `Category`
// (any word of the category) or `Category:literal`.
type GrammarBuilder struct {
	AST *parser.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, &verr.SpecError{
			Cause: semErrNoProduction,
		}
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	startName := b.AST.Start
	startPos := b.AST.StartPos
	if startName == "" {
		startName = b.AST.Productions[0].LHS
		startPos = b.AST.Productions[0].Pos
	}

	// Non-terminals are registered first so that their numbers follow declaration order.
	lhsNames := map[string]struct{}{}
	for _, p := range b.AST.Productions {
		lhsNames[p.LHS] = struct{}{}
	}
	if _, ok := lhsNames[startName]; !ok {
		return nil, &verr.SpecError{
			Cause: semErrUndefinedStart,
			Row:   startPos.Row,
			Col:   startPos.Col,
		}
	}
	start, err := w.RegisterStartSymbol(startName)
	if err != nil {
		return nil, err
	}
	for _, p := range b.AST.Productions {
		if _, err := w.RegisterNonTerminal(p.LHS); err != nil {
			b.appendError(err, p.Pos)
		}
	}

	g := NewGrammar(b.AST.Name, symTab)
	if err := g.SetStartSymbol(start); err != nil {
		return nil, err
	}

	for _, p := range b.AST.Productions {
		lhs, _ := symTab.Reader().LookupNonTerminal(p.LHS)
		for _, alt := range p.RHS {
			rhs := make([]symbol.Symbol, 0, len(alt.Symbols))
			ok := true
			for _, name := range alt.Symbols {
				sym, err := b.resolveSymbol(w, lhsNames, name)
				if err != nil {
					b.appendError(err, alt.Pos)
					ok = false
					continue
				}
				rhs = append(rhs, sym)
			}
			if !ok {
				continue
			}
			if _, err := g.AddProduction(lhs, rhs...); err != nil {
				b.appendError(err, alt.Pos)
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return g, nil
}

func (b *GrammarBuilder) resolveSymbol(w *symbol.SymbolTableWriter, nonTerms map[string]struct{}, name string) (symbol.Symbol, error) {
	if _, ok := nonTerms[name]; ok {
		return w.RegisterNonTerminal(name)
	}
	category, literal, _ := strings.Cut(name, literalSeparator)
	if category == "" {
		return symbol.SymbolNil, fmt.Errorf("%w: %q", semErrInvalidSymbol, name)
	}
	if category == symbol.CategoryEOF || category == symbol.CategoryEpsilon {
		return symbol.SymbolNil, fmt.Errorf("%w: %q", semErrReservedCategory, name)
	}
	return w.RegisterTerminal(category, literal)
}

func (b *GrammarBuilder) appendError(err error, pos parser.Position) {
	for _, e := range multierr.Errors(err) {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: e,
			Row:   pos.Row,
			Col:   pos.Col,
		})
	}
}
