package grammar

import (
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
)

// firstEntry is a FIRST set. Epsilon is kept as the `empty` flag rather than as a member.
type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

// contains reports whether sym is in the set. Passing symbol.SymbolEpsilon asks whether the
// set derives the empty string.
func (e *firstEntry) contains(sym symbol.Symbol) bool {
	if sym == symbol.SymbolEpsilon {
		return e.empty
	}
	_, ok := e.symbols[sym]
	return ok
}

// terminals returns the members in ascending order of their handles.
func (e *firstEntry) terminals() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

// firstSet memoizes FIRST of every non-terminal. The table is filled up to a fixed point, so
// left-recursive grammars terminate. A non-terminal without productions has an empty entry.
type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func genFirstSet(g *Grammar) *firstSet {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, prod := range g.Productions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	for {
		more := false
		for _, prod := range g.Productions() {
			if fst.genProdFirstEntry(fst.set[prod.lhs], prod) {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return fst
}

func (fst *firstSet) genProdFirstEntry(acc *firstEntry, prod *Production) bool {
	if prod.isEmpty() {
		return acc.addEmpty()
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}

		e := fst.findBySymbol(sym)
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed
}

// findBySymbol returns FIRST of a single symbol.
func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	if sym == symbol.SymbolEpsilon {
		e := newFirstEntry()
		e.addEmpty()
		return e
	}
	if sym.IsTerminal() {
		e := newFirstEntry()
		e.add(sym)
		return e
	}
	if e, ok := fst.set[sym]; ok {
		return e
	}
	return newFirstEntry()
}

// findBySequence returns FIRST of a symbol sequence. Each symbol contributes its FIRST minus
// epsilon until a symbol that cannot derive epsilon is reached; the result derives epsilon
// only when every symbol does.
func (fst *firstSet) findBySequence(seq []symbol.Symbol) *firstEntry {
	entry := newFirstEntry()
	for _, sym := range seq {
		e := fst.findBySymbol(sym)
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry
		}
	}
	entry.addEmpty()
	return entry
}
