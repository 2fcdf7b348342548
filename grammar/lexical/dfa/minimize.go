package dfa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"go.uber.org/zap"
)

const DefaultMaxDedupRounds = 64

type minimizeConfig struct {
	maxDedupRounds int
	logger         *zap.Logger
}

type Option func(config *minimizeConfig)

// WithMaxDedupRounds bounds the number of structural deduplication rounds. Values less than
// one are ignored.
func WithMaxDedupRounds(n int) Option {
	return func(config *minimizeConfig) {
		if n > 0 {
			config.maxDedupRounds = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(config *minimizeConfig) {
		if logger != nil {
			config.logger = logger
		}
	}
}

// Minimize returns a DFA accepting the same language with the fewest nodes. The result is
// numbered in breadth-first order from its start node, which is node 0.
func Minimize(d *DFA, opts ...Option) (*DFA, error) {
	config := &minimizeConfig{
		maxDedupRounds: DefaultMaxDedupRounds,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if d == nil {
		return nil, fmt.Errorf("a DFA is required")
	}
	if _, ok := d.Node(d.Start); !ok {
		return nil, fmt.Errorf("the start node does not exist: %v", d.Start)
	}

	refined := refinePartitions(d)
	deduped := dedup(refined, config)
	return renumber(deduped), nil
}

// refinePartitions applies Moore's partition refinement. The initial partitions are the
// accepting nodes and the other nodes. A partition is split on the first character whose
// targets fall into more than one partition, where a missing transition is a class of its
// own. Each split re-queues every multi-member partition so the fixed point is the coarsest
// stable partition.
func refinePartitions(d *DFA) *DFA {
	nodes := d.Nodes()
	alphabet := d.Alphabet()

	var partitions [][]int
	partOf := map[int]int{}
	var accepting, rejecting []int
	for _, n := range nodes {
		if n.Accepting {
			accepting = append(accepting, n.ID)
		} else {
			rejecting = append(rejecting, n.ID)
		}
	}
	for _, members := range [][]int{accepting, rejecting} {
		if len(members) == 0 {
			continue
		}
		for _, id := range members {
			partOf[id] = len(partitions)
		}
		partitions = append(partitions, members)
	}

	queue := linkedlistqueue.New()
	queued := map[int]bool{}
	enqueue := func(p int) {
		if len(partitions[p]) > 1 && !queued[p] {
			queued[p] = true
			queue.Enqueue(p)
		}
	}
	for p := range partitions {
		enqueue(p)
	}

	const noTransition = -1
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		p := v.(int)
		queued[p] = false
		members := partitions[p]
		if len(members) <= 1 {
			continue
		}

		for _, c := range alphabet {
			var classKeys []int
			classes := map[int][]int{}
			for _, id := range members {
				key := noTransition
				if next, ok := d.nodes[id].Trans[c]; ok {
					key = partOf[next]
				}
				if _, ok := classes[key]; !ok {
					classKeys = append(classKeys, key)
				}
				classes[key] = append(classes[key], id)
			}
			if len(classKeys) <= 1 {
				continue
			}

			largest := classKeys[0]
			for _, k := range classKeys[1:] {
				if len(classes[k]) > len(classes[largest]) {
					largest = k
				}
			}
			var rest []int
			for _, k := range classKeys {
				if k != largest {
					rest = append(rest, classes[k]...)
				}
			}

			partitions[p] = classes[largest]
			q := len(partitions)
			partitions = append(partitions, rest)
			for _, id := range rest {
				partOf[id] = q
			}

			for r := range partitions {
				enqueue(r)
			}
			break
		}
	}

	m := &DFA{}
	for _, members := range partitions {
		accepting := false
		for _, id := range members {
			if d.nodes[id].Accepting {
				accepting = true
				break
			}
		}
		m.addNode(accepting)
	}
	for p, members := range partitions {
		rep := d.nodes[members[0]]
		for c, next := range rep.Trans {
			m.nodes[p].Trans[c] = partOf[next]
		}
	}
	m.Start = partOf[d.Start]

	return m
}

// dedup redirects every transition to the first node, in breadth-first order, that has the
// same acceptance and the same outgoing transitions as the target, until the set of
// reachable nodes stops changing.
func dedup(d *DFA, config *minimizeConfig) *DFA {
	prev := reachableKey(d)
	for round := 1; ; round++ {
		rep := map[string]int{}
		redirect := map[int]int{}
		for _, n := range d.Nodes() {
			k := structuralKey(n)
			if r, ok := rep[k]; ok {
				redirect[n.ID] = r
				continue
			}
			rep[k] = n.ID
			redirect[n.ID] = n.ID
		}
		for _, n := range d.nodes {
			for c, next := range n.Trans {
				if r, ok := redirect[next]; ok {
					n.Trans[c] = r
				}
			}
		}
		if r, ok := redirect[d.Start]; ok {
			d.Start = r
		}

		cur := reachableKey(d)
		if cur == prev {
			config.logger.Debug("dedup converged", zap.Int("rounds", round))
			return d
		}
		prev = cur
		if round >= config.maxDedupRounds {
			config.logger.Warn("dedup did not converge; stopped at the round limit", zap.Int("rounds", round))
			return d
		}
	}
}

func structuralKey(n *Node) string {
	var b strings.Builder
	if n.Accepting {
		b.WriteString("A")
	} else {
		b.WriteString("R")
	}
	for _, c := range sortedRunes(n.Trans) {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(c)))
		b.WriteByte('>')
		b.WriteString(strconv.Itoa(n.Trans[c]))
	}
	return b.String()
}

func reachableKey(d *DFA) string {
	var b strings.Builder
	for _, n := range d.Nodes() {
		b.WriteString(strconv.Itoa(n.ID))
		b.WriteByte(',')
	}
	return b.String()
}

// renumber copies the reachable nodes into a fresh arena in breadth-first order.
func renumber(d *DFA) *DFA {
	nodes := d.Nodes()
	old2New := map[int]int{}
	r := &DFA{}
	for _, n := range nodes {
		old2New[n.ID] = r.addNode(n.Accepting)
	}
	for _, n := range nodes {
		for c, next := range n.Trans {
			r.nodes[old2New[n.ID]].Trans[c] = old2New[next]
		}
	}
	r.Start = old2New[d.Start]
	return r
}
