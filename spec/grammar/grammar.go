package grammar

import "strconv"

// CompiledFrontEnd is the portable form of a compiled token description and grammar.
type CompiledFrontEnd struct {
	Name      string         `json:"name"`
	Lexical   *LexicalSpec   `json:"lexical"`
	Syntactic *SyntacticSpec `json:"syntactic,omitempty"`
}

// StateID represents an ID of a state of a transition table.
type StateID int

const (
	// StateIDNil represents an empty entry of a transition table.
	// When the driver reads this value, the current category fails to match.
	StateIDNil = StateID(0)

	// StateIDMin is the minimum value of the state ID. All valid state IDs are represented as
	// sequential numbers starting from this value.
	StateIDMin = StateID(1)
)

func (id StateID) Int() int {
	return int(id)
}

// LexKindName represents a name of a token category.
type LexKindName string

func (k LexKindName) String() string {
	return string(k)
}

type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}

type UniqueEntriesTable struct {
	UniqueEntries    *RowDisplacementTable `json:"unique_entries"`
	RowNums          []int                 `json:"row_nums"`
	OriginalRowCount int                   `json:"original_row_count"`
	OriginalColCount int                   `json:"original_col_count"`
}

// TransitionTable is the DFA of one category. Columns follow the runes of Alphabet.
type TransitionTable struct {
	InitialStateID StateID             `json:"initial_state_id"`
	Accepting      []bool              `json:"accepting"`
	Alphabet       string              `json:"alphabet"`
	RowCount       int                 `json:"row_count"`
	ColCount       int                 `json:"col_count"`
	Transition     *UniqueEntriesTable `json:"transition"`
}

type LexicalSpec struct {
	KindNames []LexKindName      `json:"kind_names"`
	DFAs      []*TransitionTable `json:"dfas"`
}

type TerminalSpec struct {
	Category string `json:"category"`
	Literal  string `json:"literal"`
}

func (t *TerminalSpec) String() string {
	return t.Category + "," + t.Literal
}

type SyntacticSpec struct {
	Action                  *UniqueEntriesTable `json:"action"`
	GoTo                    *UniqueEntriesTable `json:"goto"`
	StateCount              int                 `json:"state_count"`
	InitialState            int                 `json:"initial_state"`
	LHSSymbols              []int               `json:"lhs_symbols"`
	AlternativeSymbolCounts []int               `json:"alternative_symbol_counts"`
	Terminals               []*TerminalSpec     `json:"terminals"`
	TerminalCount           int                 `json:"terminal_count"`
	NonTerminals            []string            `json:"non_terminals"`
	NonTerminalCount        int                 `json:"non_terminal_count"`
	EOFSymbol               int                 `json:"eof_symbol"`
	StartSymbol             int                 `json:"start_symbol"`
}

// ActionEntry encodes a parsing action in an integer.
//
//	0            error
//	positive     reduce by the production numbered (value - 1)
//	negative     shift to the state numbered (-value - 1)
//	ActionEntryAccept accept
type ActionEntry int

const (
	ActionEntryError  = ActionEntry(0)
	ActionEntryAccept = ActionEntry(-1 << 30)
)

func ShiftEntry(state int) ActionEntry {
	return ActionEntry(-(state + 1))
}

func ReduceEntry(prod int) ActionEntry {
	return ActionEntry(prod + 1)
}

// Describe decodes an entry into its kind and operand (a state or a production number).
func (e ActionEntry) Describe() (string, int) {
	switch {
	case e == ActionEntryError:
		return "error", 0
	case e == ActionEntryAccept:
		return "accept", 0
	case e < 0:
		return "shift", int(-e) - 1
	default:
		return "reduce", int(e) - 1
	}
}

func (e ActionEntry) String() string {
	kind, operand := e.Describe()
	switch kind {
	case "shift", "reduce":
		return kind + "(" + strconv.Itoa(operand) + ")"
	}
	return kind
}

// GoToEntry encodes a goto target: 0 means no entry, otherwise the state number plus one.
type GoToEntry int

const GoToEntryNil = GoToEntry(0)
