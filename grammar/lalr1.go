package grammar

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"go.uber.org/zap"
)

// ReducePlacement selects where reduce actions are written into the ACTION table.
type ReducePlacement string

const (
	// ReducePlacementCanonical writes a reduce action into the state that holds the completed
	// item, keyed by the item's look-ahead, and accepts on EOI in the state holding `S' -> S・`.
	ReducePlacementCanonical = ReducePlacement("canonical")

	// ReducePlacementPostShift writes reduce actions of a state at the moment a terminal shift
	// into that state is recorded, and turns a shift into a state that completes a start
	// production into an accept action. The grammar is not augmented in this mode.
	ReducePlacementPostShift = ReducePlacement("post-shift")
)

func ParseReducePlacement(s string) (ReducePlacement, error) {
	switch p := ReducePlacement(s); p {
	case ReducePlacementCanonical, ReducePlacementPostShift:
		return p, nil
	case "":
		return ReducePlacementCanonical, nil
	}
	return "", fmt.Errorf("unknown reduce placement: %q", s)
}

type compileConfig struct {
	placement ReducePlacement
	logger    *zap.Logger
	report    bool
}

type CompileOption func(config *compileConfig)

func WithReducePlacement(p ReducePlacement) CompileOption {
	return func(config *compileConfig) {
		config.placement = p
	}
}

func WithLogger(logger *zap.Logger) CompileOption {
	return func(config *compileConfig) {
		if logger != nil {
			config.logger = logger
		}
	}
}

// EnableReporting makes Compile return a description of the automaton.
func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.report = true
	}
}

// Compile builds an LALR(1) parsing table by constructing the canonical LR(1) automaton and
// merging states with identical item sets. The returned report is nil unless EnableReporting
// is passed.
func Compile(gram *Grammar, opts ...CompileOption) (*ParsingTable, *spec.Report, error) {
	config := &compileConfig{
		placement: ReducePlacementCanonical,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(config)
	}

	g := gram
	var startProd *Production
	var err error
	switch config.placement {
	case ReducePlacementCanonical:
		g, startProd, err = gram.augment()
	case ReducePlacementPostShift:
		startProd, err = gram.StartProduction()
	default:
		err = fmt.Errorf("unknown reduce placement: %q", config.placement)
	}
	if err != nil {
		return nil, nil, err
	}

	b := &lrTableBuilder{
		gram:         g,
		first:        genFirstSet(g),
		placement:    config.placement,
		logger:       config.logger,
		startProd:    startProd,
		kernel2State: map[string]*lrState{},
		actions:      map[int]map[symbol.Symbol]Action{},
		goTos:        map[int]map[symbol.Symbol]int{},
	}
	tab, err := b.build()
	if err != nil {
		return nil, nil, err
	}

	var report *spec.Report
	if config.report {
		report = b.genReport()
	}

	return tab, report, nil
}

type lrTableBuilder struct {
	gram      *Grammar
	first     *firstSet
	placement ReducePlacement
	logger    *zap.Logger
	startProd *Production

	states       []*lrState
	kernel2State map[string]*lrState
	actions      map[int]map[symbol.Symbol]Action
	goTos        map[int]map[symbol.Symbol]int
	mergedStates int
}

func (b *lrTableBuilder) build() (*ParsingTable, error) {
	initial := b.newState([]lrItem{newLR1Item(b.startProd, 0, symbol.SymbolEOF)})

	queue := linkedlistqueue.New()
	queue.Enqueue(initial)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		cur := v.(*lrState)
		items := cur.items.items()
		for _, sym := range transitionSymbols(items) {
			var kernel []lrItem
			for _, it := range items {
				if it.dottedSymbol() == sym {
					kernel = append(kernel, it.advance())
				}
			}
			target, ok := b.kernel2State[kernelSignature(kernel)]
			if !ok {
				target = b.newState(kernel)
				queue.Enqueue(target)
			}

			var err error
			if sym.IsTerminal() {
				err = b.recordShift(cur.num, sym, target)
			} else {
				err = b.recordGoTo(cur.num, sym, target.num)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	b.logger.Debug("built LR(1) automaton", zap.Int("states", len(b.states)))

	merged, err := b.mergeStates()
	if err != nil {
		return nil, err
	}
	b.mergedStates = merged
	b.logger.Debug("merged LR(1) states", zap.Int("merged", merged), zap.Int("states", len(b.states)))

	switch b.placement {
	case ReducePlacementCanonical:
		err = b.recordCanonicalReduces()
	case ReducePlacementPostShift:
		err = b.checkPostShiftReduces()
	}
	if err != nil {
		return nil, err
	}

	tab := newParsingTable(b.gram, len(b.states))
	for state, row := range b.actions {
		for term, act := range row {
			tab.writeAction(state, term, act)
		}
	}
	for state, row := range b.goTos {
		for nonTerm, next := range row {
			tab.writeGoTo(state, nonTerm, next)
		}
	}
	tab.initialState = initial.num

	return tab, nil
}

func (b *lrTableBuilder) newState(kernel []lrItem) *lrState {
	st := &lrState{
		num:    len(b.states),
		kernel: kernel,
		items:  b.genClosure(kernel),
	}
	b.states = append(b.states, st)
	b.kernel2State[kernelSignature(kernel)] = st
	return st
}

// genClosure adds `B -> ・γ, b` for every item `A -> α・Bβ, a` and every b in FIRST(βa) until
// no item can be added.
func (b *lrTableBuilder) genClosure(kernel []lrItem) *itemSet {
	items := newItemSet(kernel...)
	queue := linkedlistqueue.New()
	for _, it := range kernel {
		queue.Enqueue(it)
	}
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		it := v.(lrItem)
		sym := it.dottedSymbol()
		if !sym.IsNonTerminal() {
			continue
		}

		rest := make([]symbol.Symbol, 0, len(it.prod.rhs)-it.dot)
		rest = append(rest, it.prod.rhs[it.dot+1:]...)
		rest = append(rest, it.lookAhead)
		las := b.first.findBySequence(rest).terminals()
		for _, prod := range b.gram.ProductionsOf(sym) {
			for _, la := range las {
				next := newLR1Item(prod, 0, la)
				if items.add(next) {
					queue.Enqueue(next)
				}
			}
		}
	}
	return items
}

// transitionSymbols lists the symbols following a dot in order of first appearance.
func transitionSymbols(items []lrItem) []symbol.Symbol {
	var syms []symbol.Symbol
	seen := map[symbol.Symbol]struct{}{}
	for _, it := range items {
		sym := it.dottedSymbol()
		if sym.IsNil() {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		syms = append(syms, sym)
	}
	return syms
}

func (b *lrTableBuilder) actionRow(state int) map[symbol.Symbol]Action {
	row, ok := b.actions[state]
	if !ok {
		row = map[symbol.Symbol]Action{}
		b.actions[state] = row
	}
	return row
}

func (b *lrTableBuilder) goToRow(state int) map[symbol.Symbol]int {
	row, ok := b.goTos[state]
	if !ok {
		row = map[symbol.Symbol]int{}
		b.goTos[state] = row
	}
	return row
}

func (b *lrTableBuilder) conflict(kind ConflictKind, state int, sym symbol.Symbol, existing, incoming fmt.Stringer) error {
	err := &ConflictError{
		Kind:     kind,
		State:    state,
		Symbol:   b.gram.symbolText(sym),
		Existing: existing.String(),
		Incoming: incoming.String(),
	}
	b.logger.Debug("conflict", zap.Error(err))
	return err
}

func (b *lrTableBuilder) recordShift(state int, term symbol.Symbol, target *lrState) error {
	row := b.actionRow(state)
	incoming := shiftAction(target.num)
	if existing, ok := row[term]; ok {
		switch existing.Type {
		case ActionTypeShift:
			if existing.State != target.num {
				return b.conflict(ConflictShiftShift, state, term, existing, incoming)
			}
		case ActionTypeReduce:
			return b.conflict(ConflictShiftReduce, state, term, existing, incoming)
		}
	} else {
		row[term] = incoming
	}

	if b.placement != ReducePlacementPostShift {
		return nil
	}

	reducible := target.reducibleItems()
	for _, it := range reducible {
		if it.prod.lhs == b.gram.StartSymbol() {
			row[term] = acceptAction
			return nil
		}
	}
	for _, it := range reducible {
		if err := b.recordReduce(target.num, it); err != nil {
			return err
		}
	}
	return nil
}

func (b *lrTableBuilder) recordGoTo(state int, nonTerm symbol.Symbol, target int) error {
	row := b.goToRow(state)
	if existing, ok := row[nonTerm]; ok && existing != target {
		return b.conflict(ConflictGoToGoTo, state, nonTerm, goToText(existing), goToText(target))
	}
	row[nonTerm] = target
	return nil
}

type goToText int

func (t goToText) String() string {
	return fmt.Sprintf("goto(%v)", int(t))
}

func (b *lrTableBuilder) recordReduce(state int, it lrItem) error {
	row := b.actionRow(state)
	incoming := reduceAction(it.prod.id)
	existing, ok := row[it.lookAhead]
	if !ok {
		row[it.lookAhead] = incoming
		return nil
	}
	switch existing.Type {
	case ActionTypeShift:
		return b.conflict(ConflictShiftReduce, state, it.lookAhead, existing, incoming)
	case ActionTypeAccept:
		if b.placement == ReducePlacementPostShift {
			return b.conflict(ConflictShiftReduce, state, it.lookAhead, existing, incoming)
		}
		return b.conflict(ConflictReduceReduce, state, it.lookAhead, existing, incoming)
	case ActionTypeReduce:
		if existing.Production == incoming.Production {
			return nil
		}
		if b.placement == ReducePlacementPostShift {
			// The first reduction written wins.
			b.logger.Debug("reduce/reduce overlap ignored",
				zap.Int("state", state),
				zap.String("symbol", b.gram.symbolText(it.lookAhead)),
				zap.Stringer("existing", existing),
				zap.Stringer("incoming", incoming))
			return nil
		}
		return b.conflict(ConflictReduceReduce, state, it.lookAhead, existing, incoming)
	}
	return nil
}

func (b *lrTableBuilder) recordCanonicalReduces() error {
	for _, st := range b.states {
		for _, it := range st.reducibleItems() {
			if it.prod != b.startProd {
				if err := b.recordReduce(st.num, it); err != nil {
					return err
				}
				continue
			}
			if it.lookAhead != symbol.SymbolEOF {
				continue
			}
			row := b.actionRow(st.num)
			if existing, ok := row[symbol.SymbolEOF]; ok && existing.Type != ActionTypeAccept {
				return b.conflict(ConflictReduceReduce, st.num, symbol.SymbolEOF, existing, acceptAction)
			}
			row[symbol.SymbolEOF] = acceptAction
		}
	}
	return nil
}

// checkPostShiftReduces reports a reduce item whose lookahead its own state shifts or accepts on.
// Post-shift placement installs reductions only in states entered by a terminal shift, so such
// an item may never reach the table and the shift would win silently.
func (b *lrTableBuilder) checkPostShiftReduces() error {
	for _, st := range b.states {
		row := b.actions[st.num]
		if row == nil {
			continue
		}
		for _, it := range st.reducibleItems() {
			existing, ok := row[it.lookAhead]
			if !ok {
				continue
			}
			if existing.Type == ActionTypeShift || existing.Type == ActionTypeAccept {
				return b.conflict(ConflictShiftReduce, st.num, it.lookAhead, existing, reduceAction(it.prod.id))
			}
		}
	}
	return nil
}

// sortedActionKeys returns the keys of a row in ascending order.
func sortedActionKeys(row map[symbol.Symbol]Action) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}

func sortedGoToKeys(row map[symbol.Symbol]int) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	sortSymbols(syms)
	return syms
}
