package dfa

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/compressor"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

// TransitionTable converts the reachable part of the DFA into a compressed table. State IDs
// are the breadth-first positions of the nodes plus one, and state 0 means no transition.
func (d *DFA) TransitionTable() (*spec.TransitionTable, error) {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("the DFA has no start node")
	}
	alphabet := d.Alphabet()
	col := map[rune]int{}
	for i, c := range alphabet {
		col[c] = i
	}
	// A table keeps at least one column so that a DFA accepting only the empty string can
	// still be compressed.
	colCount := len(alphabet)
	if colCount == 0 {
		colCount = 1
	}

	id2State := map[int]spec.StateID{}
	for i, n := range nodes {
		id2State[n.ID] = spec.StateID(i) + spec.StateIDMin
	}
	rowCount := len(nodes) + spec.StateIDMin.Int()
	entries := make([]int, rowCount*colCount)
	accepting := make([]bool, rowCount)
	for _, n := range nodes {
		row := id2State[n.ID].Int()
		accepting[row] = n.Accepting
		for c, next := range n.Trans {
			entries[row*colCount+col[c]] = id2State[next].Int()
		}
	}

	tab, err := compressor.Compress(entries, colCount, spec.StateIDNil.Int())
	if err != nil {
		return nil, err
	}

	return &spec.TransitionTable{
		InitialStateID: id2State[d.Start],
		Accepting:      accepting,
		Alphabet:       string(alphabet),
		RowCount:       rowCount,
		ColCount:       colCount,
		Transition:     tab,
	}, nil
}

// FromTransitionTable restores a DFA from its compressed table. Node IDs are state IDs minus
// one.
func FromTransitionTable(tab *spec.TransitionTable) (*DFA, error) {
	if tab == nil || tab.Transition == nil {
		return nil, fmt.Errorf("a transition table is required")
	}
	if len(tab.Accepting) != tab.RowCount {
		return nil, fmt.Errorf("accepting flags and rows mismatch; flags: %v, rows: %v", len(tab.Accepting), tab.RowCount)
	}
	alphabet := []rune(tab.Alphabet)
	if len(alphabet) > tab.ColCount {
		return nil, fmt.Errorf("the alphabet is wider than the table; alphabet: %v, columns: %v", len(alphabet), tab.ColCount)
	}

	d := &DFA{}
	for row := spec.StateIDMin.Int(); row < tab.RowCount; row++ {
		d.addNode(tab.Accepting[row])
	}
	for row := spec.StateIDMin.Int(); row < tab.RowCount; row++ {
		for i, c := range alphabet {
			v, err := compressor.Lookup(tab.Transition, row, i)
			if err != nil {
				return nil, err
			}
			if v == spec.StateIDNil.Int() {
				continue
			}
			if v < spec.StateIDMin.Int() || v >= tab.RowCount {
				return nil, fmt.Errorf("a transition refers to an unknown state: %v", v)
			}
			d.nodes[row-spec.StateIDMin.Int()].Trans[c] = v - spec.StateIDMin.Int()
		}
	}
	d.Start = tab.InitialStateID.Int() - spec.StateIDMin.Int()
	if _, ok := d.Node(d.Start); !ok {
		return nil, fmt.Errorf("the initial state does not exist: %v", tab.InitialStateID)
	}
	return d, nil
}
