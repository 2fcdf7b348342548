package dfa

import (
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Node is a state of a DFA. Trans maps a character to the ID of the next node.
type Node struct {
	ID        int
	Accepting bool
	Trans     map[rune]int
}

// DFA is a deterministic automaton whose nodes live in an arena indexed by node ID.
type DFA struct {
	nodes []*Node
	Start int
}

func (d *DFA) addNode(accepting bool) int {
	id := len(d.nodes)
	d.nodes = append(d.nodes, &Node{
		ID:        id,
		Accepting: accepting,
		Trans:     map[rune]int{},
	})
	return id
}

func (d *DFA) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(d.nodes) {
		return nil, false
	}
	return d.nodes[id], true
}

// Nodes returns the nodes reachable from the start node in breadth-first order. Transitions
// of a node are followed in ascending order of their characters.
func (d *DFA) Nodes() []*Node {
	if _, ok := d.Node(d.Start); !ok {
		return nil
	}
	var nodes []*Node
	visited := map[int]struct{}{
		d.Start: {},
	}
	queue := linkedlistqueue.New()
	queue.Enqueue(d.Start)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		n := d.nodes[v.(int)]
		nodes = append(nodes, n)
		for _, c := range sortedRunes(n.Trans) {
			next := n.Trans[c]
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue.Enqueue(next)
		}
	}
	return nodes
}

// Alphabet returns the characters labeling transitions of reachable nodes in ascending order.
func (d *DFA) Alphabet() []rune {
	set := map[rune]struct{}{}
	for _, n := range d.Nodes() {
		for c := range n.Trans {
			set[c] = struct{}{}
		}
	}
	return runeSetToSlice(set)
}

// Accepts reports whether the whole of s leads from the start node to an accepting node.
func (d *DFA) Accepts(s string) bool {
	cur, ok := d.Node(d.Start)
	if !ok {
		return false
	}
	for _, c := range s {
		next, ok := cur.Trans[c]
		if !ok {
			return false
		}
		cur = d.nodes[next]
	}
	return cur.Accepting
}

func sortedRunes(trans map[rune]int) []rune {
	cs := make([]rune, 0, len(trans))
	for c := range trans {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i] < cs[j]
	})
	return cs
}

func runeSetToSlice(set map[rune]struct{}) []rune {
	cs := make([]rune, 0, len(set))
	for c := range set {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		return cs[i] < cs[j]
	})
	return cs
}
