package grammar

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"github.com/emirpasic/gods/sets/treeset"
)

// lrItem is an LR(1) item `A -> α・β, a`. Items are compared by value.
type lrItem struct {
	prod      *Production
	dot       int
	lookAhead symbol.Symbol
}

func newLR1Item(prod *Production, dot int, lookAhead symbol.Symbol) lrItem {
	return lrItem{
		prod:      prod,
		dot:       dot,
		lookAhead: lookAhead,
	}
}

// reducible reports whether the dot has reached the end of the production.
func (it lrItem) reducible() bool {
	return it.dot >= len(it.prod.rhs)
}

func (it lrItem) dottedSymbol() symbol.Symbol {
	if it.reducible() {
		return symbol.SymbolNil
	}
	return it.prod.rhs[it.dot]
}

func (it lrItem) advance() lrItem {
	return newLR1Item(it.prod, it.dot+1, it.lookAhead)
}

func (it lrItem) writeSignature(b *strings.Builder) {
	b.WriteString(strconv.Itoa(it.prod.id))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(it.dot))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(it.lookAhead)))
}

// compareItems orders items by production ID, dot position and look-ahead.
func compareItems(a, b interface{}) int {
	x := a.(lrItem)
	y := b.(lrItem)
	switch {
	case x.prod.id != y.prod.id:
		return x.prod.id - y.prod.id
	case x.dot != y.dot:
		return x.dot - y.dot
	default:
		return int(x.lookAhead) - int(y.lookAhead)
	}
}

func sortItems(items []lrItem) {
	sort.Slice(items, func(i, j int) bool {
		return compareItems(items[i], items[j]) < 0
	})
}

func sortSymbols(syms []symbol.Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
}

func joinSignature(items []lrItem, sep byte) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(sep)
		}
		it.writeSignature(&b)
	}
	return b.String()
}

// kernelSignature identifies a state before closure.
func kernelSignature(kernel []lrItem) string {
	items := make([]lrItem, len(kernel))
	copy(items, kernel)
	sortItems(items)
	return joinSignature(items, '|')
}

// itemSet is an ordered set of items.
type itemSet struct {
	set *treeset.Set
}

func newItemSet(items ...lrItem) *itemSet {
	s := &itemSet{
		set: treeset.NewWith(compareItems),
	}
	for _, it := range items {
		s.add(it)
	}
	return s
}

func (s *itemSet) add(it lrItem) bool {
	if s.set.Contains(it) {
		return false
	}
	s.set.Add(it)
	return true
}

func (s *itemSet) items() []lrItem {
	vals := s.set.Values()
	items := make([]lrItem, len(vals))
	for i, v := range vals {
		items[i] = v.(lrItem)
	}
	return items
}

func (s *itemSet) size() int {
	return s.set.Size()
}

// fullSignature identifies a state by all of its closure items.
func (s *itemSet) fullSignature() string {
	return joinSignature(s.items(), ';')
}

type lrState struct {
	num    int
	kernel []lrItem
	items  *itemSet
}

func (s *lrState) reducibleItems() []lrItem {
	var items []lrItem
	for _, it := range s.items.items() {
		if it.reducible() {
			items = append(items, it)
		}
	}
	return items
}
