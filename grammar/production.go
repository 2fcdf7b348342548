package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
)

// Production is an immutable rule `LHS -> RHS`. An empty RHS derives the empty string.
type Production struct {
	id  int
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

func newProduction(id int, lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	body := make([]symbol.Symbol, 0, len(rhs))
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
		if sym == symbol.SymbolEOF {
			return nil, semErrEOFInRHS
		}
		// An explicit epsilon is the same as an empty alternative.
		if sym == symbol.SymbolEpsilon {
			continue
		}
		body = append(body, sym)
	}

	return &Production{
		id:  id,
		lhs: lhs,
		rhs: body,
	}, nil
}

// ID returns the creation number of the production. IDs increase monotonically in a grammar.
func (p *Production) ID() int {
	return p.id
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

func (p *Production) RHS() []symbol.Symbol {
	return p.rhs
}

func (p *Production) Len() int {
	return len(p.rhs)
}

func (p *Production) isEmpty() bool {
	return len(p.rhs) == 0
}

func (p *Production) key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(p.lhs)))
	b.WriteString("->")
	for _, sym := range p.rhs {
		b.WriteString(strconv.Itoa(int(sym)))
		b.WriteByte(' ')
	}
	return b.String()
}

type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*Production
	key2Prod  map[string]*Production
	prods     []*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*Production{},
		key2Prod:  map[string]*Production{},
	}
}

func (ps *productionSet) nextID() int {
	return len(ps.prods)
}

func (ps *productionSet) append(prod *Production) bool {
	k := prod.key()
	if _, ok := ps.key2Prod[k]; ok {
		return false
	}
	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.key2Prod[k] = prod
	ps.prods = append(ps.prods, prod)
	return true
}

func (ps *productionSet) findByID(id int) (*Production, bool) {
	if id < 0 || id >= len(ps.prods) {
		return nil, false
	}
	return ps.prods[id], true
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) []*Production {
	if lhs.IsNil() {
		return nil
	}
	return ps.lhs2Prods[lhs]
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.prods
}
