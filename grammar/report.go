package grammar

import (
	"sort"

	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

func (b *lrTableBuilder) genReport() *spec.Report {
	r := b.gram.SymbolTable().Reader()

	var terms []*spec.Terminal
	for _, sym := range r.TerminalSymbols() {
		name, _ := r.ToText(sym)
		cat, lit, _ := r.TerminalInfo(sym)
		terms = append(terms, &spec.Terminal{
			Number:   sym.Num().Int(),
			Name:     name,
			Category: cat,
			Literal:  lit,
		})
	}

	var nonTerms []*spec.NonTerminal
	for _, sym := range r.NonTerminalSymbols() {
		name, _ := r.ToText(sym)
		nonTerms = append(nonTerms, &spec.NonTerminal{
			Number: sym.Num().Int(),
			Name:   name,
		})
	}

	var prods []*spec.Production
	for _, p := range b.gram.Productions() {
		rhs := make([]int, len(p.rhs))
		for i, sym := range p.rhs {
			// Terminals are reported as negative numbers to tell them apart from non-terminals.
			if sym.IsTerminal() {
				rhs[i] = -sym.Num().Int()
			} else {
				rhs[i] = sym.Num().Int()
			}
		}
		prods = append(prods, &spec.Production{
			Number: p.id,
			LHS:    p.lhs.Num().Int(),
			RHS:    rhs,
		})
	}

	states := make([]*spec.State, len(b.states))
	for _, st := range b.states {
		kernel := make([]lrItem, len(st.kernel))
		copy(kernel, st.kernel)
		sortItems(kernel)
		var items []*spec.Item
		for _, it := range kernel {
			items = append(items, &spec.Item{
				Production: it.prod.id,
				Dot:        it.dot,
				LookAhead:  it.lookAhead.Num().Int(),
			})
		}

		var shift []*spec.Transition
		var accept []int
		prod2LA := map[int][]int{}
		row := b.actions[st.num]
		for _, sym := range sortedActionKeys(row) {
			act := row[sym]
			switch act.Type {
			case ActionTypeShift:
				shift = append(shift, &spec.Transition{
					Symbol: sym.Num().Int(),
					State:  act.State,
				})
			case ActionTypeReduce:
				prod2LA[act.Production] = append(prod2LA[act.Production], sym.Num().Int())
			case ActionTypeAccept:
				accept = append(accept, sym.Num().Int())
			}
		}
		var reduce []*spec.Reduce
		for prod, las := range prod2LA {
			reduce = append(reduce, &spec.Reduce{
				LookAhead:  las,
				Production: prod,
			})
		}
		sort.Slice(reduce, func(i, j int) bool {
			return reduce[i].Production < reduce[j].Production
		})

		var goTo []*spec.Transition
		goToRow := b.goTos[st.num]
		for _, sym := range sortedGoToKeys(goToRow) {
			goTo = append(goTo, &spec.Transition{
				Symbol: sym.Num().Int(),
				State:  goToRow[sym],
			})
		}

		states[st.num] = &spec.State{
			Number: st.num,
			Kernel: items,
			Shift:  shift,
			Reduce: reduce,
			GoTo:   goTo,
			Accept: accept,
		}
	}

	return &spec.Report{
		ReducePlacement: string(b.placement),
		MergedStates:    b.mergedStates,
		Terminals:       terms,
		NonTerminals:    nonTerms,
		Productions:     prods,
		States:          states,
	}
}
