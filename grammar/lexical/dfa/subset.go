package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/nfa"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// EpsilonClosure returns the seed nodes and every node reachable from them through epsilon
// edges, sorted by ID.
func EpsilonClosure(n *nfa.NFA, seed []nfa.NodeID) []nfa.NodeID {
	visited := map[nfa.NodeID]struct{}{}
	stack := arraystack.New()
	for _, id := range seed {
		stack.Push(id)
	}
	for !stack.Empty() {
		v, _ := stack.Pop()
		id := v.(nfa.NodeID)
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		for _, next := range n.Node(id).Epsilon {
			if _, ok := visited[next]; !ok {
				stack.Push(next)
			}
		}
	}
	return sortedIDs(visited)
}

// Move returns the nodes reachable from set by consuming c, sorted by ID.
func Move(n *nfa.NFA, set []nfa.NodeID, c rune) []nfa.NodeID {
	dest := map[nfa.NodeID]struct{}{}
	for _, id := range set {
		for _, next := range n.Node(id).Trans[c] {
			dest[next] = struct{}{}
		}
	}
	return sortedIDs(dest)
}

// Alphabet returns every character on a transition reachable from the start node of n.
func Alphabet(n *nfa.NFA) []rune {
	set := map[rune]struct{}{}
	visited := map[nfa.NodeID]struct{}{
		n.Start: {},
	}
	stack := arraystack.New()
	stack.Push(n.Start)
	for !stack.Empty() {
		v, _ := stack.Pop()
		node := n.Node(v.(nfa.NodeID))
		var succ []nfa.NodeID
		for c, ids := range node.Trans {
			set[c] = struct{}{}
			succ = append(succ, ids...)
		}
		succ = append(succ, node.Epsilon...)
		for _, next := range succ {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			stack.Push(next)
		}
	}
	return runeSetToSlice(set)
}

// GenDFA converts an NFA into a DFA by the subset construction. A DFA node is accepting when
// its NFA node set contains the NFA's end node.
func GenDFA(n *nfa.NFA) *DFA {
	alphabet := Alphabet(n)
	d := &DFA{}

	var sets [][]nfa.NodeID
	key2Node := map[string]int{}
	queue := linkedlistqueue.New()
	register := func(set []nfa.NodeID) int {
		id := d.addNode(containsID(set, n.End))
		sets = append(sets, set)
		key2Node[setKey(set)] = id
		queue.Enqueue(id)
		return id
	}

	d.Start = register(EpsilonClosure(n, []nfa.NodeID{n.Start}))
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		from := v.(int)
		for _, c := range alphabet {
			next := EpsilonClosure(n, Move(n, sets[from], c))
			if len(next) == 0 {
				continue
			}
			to, ok := key2Node[setKey(next)]
			if !ok {
				to = register(next)
			}
			d.nodes[from].Trans[c] = to
		}
	}

	return d
}

func sortedIDs(set map[nfa.NodeID]struct{}) []nfa.NodeID {
	ids := make([]nfa.NodeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// setKey identifies a sorted node set.
func setKey(set []nfa.NodeID) string {
	var b strings.Builder
	for i, id := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

func containsID(set []nfa.NodeID, id nfa.NodeID) bool {
	i := sort.Search(len(set), func(i int) bool {
		return set[i] >= id
	})
	return i < len(set) && set[i] == id
}
