package grammar

import (
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	"go.uber.org/zap"
)

// mergeStates collapses states whose closure item sets are identical into the lowest numbered
// one, moves the merged states' transitions into the survivor and renumbers the remaining
// states densely. It returns the number of states removed.
func (b *lrTableBuilder) mergeStates() (int, error) {
	var sigs []string
	groups := map[string][]*lrState{}
	for _, st := range b.states {
		sig := st.items.fullSignature()
		if _, ok := groups[sig]; !ok {
			sigs = append(sigs, sig)
		}
		groups[sig] = append(groups[sig], st)
	}

	alias := map[int]int{}
	for _, sig := range sigs {
		group := groups[sig]
		survivor := group[0]
		for _, st := range group[1:] {
			for _, it := range st.items.items() {
				survivor.items.add(it)
			}
			alias[st.num] = survivor.num
		}
	}
	if len(alias) == 0 {
		return 0, nil
	}

	for _, row := range b.actions {
		for sym, act := range row {
			if act.Type != ActionTypeShift {
				continue
			}
			if to, ok := alias[act.State]; ok {
				row[sym] = shiftAction(to)
			}
		}
	}
	for _, row := range b.goTos {
		for sym, next := range row {
			if to, ok := alias[next]; ok {
				row[sym] = to
			}
		}
	}

	for _, st := range b.states {
		to, ok := alias[st.num]
		if !ok {
			continue
		}
		if row, ok := b.actions[st.num]; ok {
			dest := b.actionRow(to)
			for _, sym := range sortedActionKeys(row) {
				act := row[sym]
				if existing, ok := dest[sym]; ok && existing != act {
					return 0, b.conflict(mergeConflictKind(existing, act), to, sym, existing, act)
				}
				dest[sym] = act
			}
			delete(b.actions, st.num)
		}
		if row, ok := b.goTos[st.num]; ok {
			dest := b.goToRow(to)
			for _, sym := range sortedGoToKeys(row) {
				next := row[sym]
				if existing, ok := dest[sym]; ok && existing != next {
					return 0, b.conflict(ConflictGoToGoTo, to, sym, goToText(existing), goToText(next))
				}
				dest[sym] = next
			}
			delete(b.goTos, st.num)
		}
		b.logger.Debug("merge state", zap.Int("from", st.num), zap.Int("into", to))
	}

	b.renumber(alias)

	return len(alias), nil
}

func mergeConflictKind(existing, incoming Action) ConflictKind {
	switch {
	case existing.Type == ActionTypeShift && incoming.Type == ActionTypeShift:
		return ConflictShiftShift
	case existing.Type == ActionTypeShift || incoming.Type == ActionTypeShift:
		return ConflictShiftReduce
	}
	return ConflictReduceReduce
}

// renumber drops the merged-away states and assigns the survivors consecutive numbers in their
// original order.
func (b *lrTableBuilder) renumber(alias map[int]int) {
	old2New := map[int]int{}
	var states []*lrState
	for _, st := range b.states {
		if _, ok := alias[st.num]; ok {
			continue
		}
		old2New[st.num] = len(states)
		states = append(states, st)
	}

	actions := map[int]map[symbol.Symbol]Action{}
	for old, row := range b.actions {
		for sym, act := range row {
			if act.Type == ActionTypeShift {
				row[sym] = shiftAction(old2New[act.State])
			}
		}
		actions[old2New[old]] = row
	}
	goTos := map[int]map[symbol.Symbol]int{}
	for old, row := range b.goTos {
		for sym, next := range row {
			row[sym] = old2New[next]
		}
		goTos[old2New[old]] = row
	}

	for _, st := range states {
		st.num = old2New[st.num]
	}
	b.states = states
	b.actions = actions
	b.goTos = goTos
}
