package grammar

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/compressor"
	"github.com/AlrayQiu/TLARCCompiler/grammar/symbol"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// Action is an entry of the ACTION table. State is meaningful for shift actions and
// Production for reduce actions.
type Action struct {
	Type       ActionType
	State      int
	Production int
}

func shiftAction(state int) Action {
	return Action{Type: ActionTypeShift, State: state}
}

func reduceAction(prod int) Action {
	return Action{Type: ActionTypeReduce, Production: prod}
}

var (
	acceptAction = Action{Type: ActionTypeAccept}
	errorAction  = Action{Type: ActionTypeError}
)

func (a Action) String() string {
	switch a.Type {
	case ActionTypeShift:
		return fmt.Sprintf("shift(%v)", a.State)
	case ActionTypeReduce:
		return fmt.Sprintf("reduce(%v)", a.Production)
	}
	return string(a.Type)
}

func (a Action) entry() spec.ActionEntry {
	switch a.Type {
	case ActionTypeShift:
		return spec.ShiftEntry(a.State)
	case ActionTypeReduce:
		return spec.ReduceEntry(a.Production)
	case ActionTypeAccept:
		return spec.ActionEntryAccept
	}
	return spec.ActionEntryError
}

func actionFromEntry(e spec.ActionEntry) Action {
	kind, operand := e.Describe()
	switch kind {
	case "shift":
		return shiftAction(operand)
	case "reduce":
		return reduceAction(operand)
	case "accept":
		return acceptAction
	}
	return errorAction
}

type ConflictKind string

const (
	ConflictShiftShift   = ConflictKind("shift/shift")
	ConflictShiftReduce  = ConflictKind("shift/reduce")
	ConflictReduceReduce = ConflictKind("reduce/reduce")
	ConflictGoToGoTo     = ConflictKind("goto/goto")
)

// ConflictError means the grammar cannot be handled by this construction. No table is
// produced when it occurs.
type ConflictError struct {
	Kind     ConflictKind
	State    int
	Symbol   string
	Existing string
	Incoming string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v conflict: state: %v, symbol: %v, existing: %v, incoming: %v", e.Kind, e.State, e.Symbol, e.Existing, e.Incoming)
}

// ParsingTable holds dense ACTION and GOTO tables. Rows are states; columns are terminal and
// non-terminal numbers of the grammar's symbol table.
type ParsingTable struct {
	actionTable      []spec.ActionEntry
	goToTable        []spec.GoToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int
	initialState     int
	gram             *Grammar
}

func newParsingTable(gram *Grammar, stateCount int) *ParsingTable {
	r := gram.SymbolTable().Reader()
	termCount := r.TerminalCount()
	nonTermCount := r.NonTerminalCount()
	return &ParsingTable{
		actionTable:      make([]spec.ActionEntry, stateCount*termCount),
		goToTable:        make([]spec.GoToEntry, stateCount*nonTermCount),
		stateCount:       stateCount,
		terminalCount:    termCount,
		nonTerminalCount: nonTermCount,
		gram:             gram,
	}
}

func (t *ParsingTable) writeAction(state int, term symbol.Symbol, act Action) {
	t.actionTable[state*t.terminalCount+term.Num().Int()] = act.entry()
}

func (t *ParsingTable) writeGoTo(state int, nonTerm symbol.Symbol, next int) {
	t.goToTable[state*t.nonTerminalCount+nonTerm.Num().Int()] = spec.GoToEntry(next + 1)
}

// Action returns ACTION[state, term]. Unknown keys yield an error action.
func (t *ParsingTable) Action(state int, term symbol.Symbol) Action {
	if state < 0 || state >= t.stateCount || !term.IsTerminal() || term.Num().Int() >= t.terminalCount {
		return errorAction
	}
	return actionFromEntry(t.actionTable[state*t.terminalCount+term.Num().Int()])
}

// GoTo returns GOTO[state, nonTerm].
func (t *ParsingTable) GoTo(state int, nonTerm symbol.Symbol) (int, bool) {
	if state < 0 || state >= t.stateCount || !nonTerm.IsNonTerminal() || nonTerm.Num().Int() >= t.nonTerminalCount {
		return 0, false
	}
	e := t.goToTable[state*t.nonTerminalCount+nonTerm.Num().Int()]
	if e == spec.GoToEntryNil {
		return 0, false
	}
	return int(e) - 1, true
}

func (t *ParsingTable) StateCount() int {
	return t.stateCount
}

func (t *ParsingTable) InitialState() int {
	return t.initialState
}

// Grammar returns the grammar the table drives. With canonical reduce placement this is the
// augmented grammar, which has one more production than the source grammar.
func (t *ParsingTable) Grammar() *Grammar {
	return t.gram
}

// Spec converts the table into its portable form with both tables compressed.
func (t *ParsingTable) Spec() (*spec.SyntacticSpec, error) {
	action := make([]int, len(t.actionTable))
	for i, e := range t.actionTable {
		action[i] = int(e)
	}
	goTo := make([]int, len(t.goToTable))
	for i, e := range t.goToTable {
		goTo[i] = int(e)
	}
	actionTab, err := compressor.Compress(action, t.terminalCount, int(spec.ActionEntryError))
	if err != nil {
		return nil, err
	}
	goToTab, err := compressor.Compress(goTo, t.nonTerminalCount, int(spec.GoToEntryNil))
	if err != nil {
		return nil, err
	}

	prods := t.gram.Productions()
	lhsSyms := make([]int, len(prods))
	altSymCounts := make([]int, len(prods))
	for _, p := range prods {
		lhsSyms[p.id] = p.lhs.Num().Int()
		altSymCounts[p.id] = p.Len()
	}

	r := t.gram.SymbolTable().Reader()
	terms := make([]*spec.TerminalSpec, t.terminalCount)
	terms[0] = &spec.TerminalSpec{}
	for _, sym := range r.TerminalSymbols() {
		cat, lit, _ := r.TerminalInfo(sym)
		terms[sym.Num()] = &spec.TerminalSpec{
			Category: cat,
			Literal:  lit,
		}
	}
	nonTerms := make([]string, t.nonTerminalCount)
	for _, sym := range r.NonTerminalSymbols() {
		nonTerms[sym.Num()], _ = r.ToText(sym)
	}

	return &spec.SyntacticSpec{
		Action:                  actionTab,
		GoTo:                    goToTab,
		StateCount:              t.stateCount,
		InitialState:            t.initialState,
		LHSSymbols:              lhsSyms,
		AlternativeSymbolCounts: altSymCounts,
		Terminals:               terms,
		TerminalCount:           t.terminalCount,
		NonTerminals:            nonTerms,
		NonTerminalCount:        t.nonTerminalCount,
		EOFSymbol:               symbol.SymbolEOF.Num().Int(),
		StartSymbol:             t.gram.StartSymbol().Num().Int(),
	}, nil
}
