package nfa

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/parser"
)

type NodeID int

// Node is a state of an NFA. Trans holds the character transitions and Epsilon the
// successors reachable without consuming input.
type Node struct {
	ID      NodeID
	Trans   map[rune][]NodeID
	Epsilon []NodeID
}

// NFA is an automaton with a single start and a single accepting node. The nodes live in an
// arena and refer to each other by index.
type NFA struct {
	Nodes []*Node
	Start NodeID
	End   NodeID
}

func (n *NFA) Node(id NodeID) *Node {
	return n.Nodes[id]
}

type fragment struct {
	start NodeID
	end   NodeID
}

type builder struct {
	nodes []*Node
}

// Build translates a regular expression tree with Thompson's construction.
func Build(root *parser.Node) (*NFA, error) {
	if root == nil {
		return nil, fmt.Errorf("a regular expression tree is required")
	}
	b := &builder{}
	frag, err := b.build(root)
	if err != nil {
		return nil, err
	}
	return &NFA{
		Nodes: b.nodes,
		Start: frag.start,
		End:   frag.end,
	}, nil
}

func (b *builder) newNode() NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, &Node{
		ID:    id,
		Trans: map[rune][]NodeID{},
	})
	return id
}

func (b *builder) addTrans(from NodeID, c rune, to NodeID) {
	n := b.nodes[from]
	n.Trans[c] = append(n.Trans[c], to)
}

func (b *builder) addEpsilon(from NodeID, to ...NodeID) {
	n := b.nodes[from]
	n.Epsilon = append(n.Epsilon, to...)
}

func (b *builder) build(n *parser.Node) (fragment, error) {
	switch n.Kind {
	case parser.NodeKindCharacter:
		start, end := b.newNode(), b.newNode()
		b.addTrans(start, n.Char, end)
		return fragment{start: start, end: end}, nil
	case parser.NodeKindEpsilon:
		start, end := b.newNode(), b.newNode()
		b.addEpsilon(start, end)
		return fragment{start: start, end: end}, nil
	case parser.NodeKindConcat:
		left, err := b.buildOperand(n.Left, n)
		if err != nil {
			return fragment{}, err
		}
		right, err := b.buildOperand(n.Right, n)
		if err != nil {
			return fragment{}, err
		}
		b.addEpsilon(left.end, right.start)
		return fragment{start: left.start, end: right.end}, nil
	case parser.NodeKindAlternate:
		left, err := b.buildOperand(n.Left, n)
		if err != nil {
			return fragment{}, err
		}
		right, err := b.buildOperand(n.Right, n)
		if err != nil {
			return fragment{}, err
		}
		start, end := b.newNode(), b.newNode()
		b.addEpsilon(start, left.start, right.start)
		b.addEpsilon(left.end, end)
		b.addEpsilon(right.end, end)
		return fragment{start: start, end: end}, nil
	case parser.NodeKindClosure:
		operand, err := b.buildOperand(n.Left, n)
		if err != nil {
			return fragment{}, err
		}
		start, end := b.newNode(), b.newNode()
		b.addEpsilon(start, operand.start, end)
		b.addEpsilon(operand.end, operand.start, end)
		return fragment{start: start, end: end}, nil
	}
	return fragment{}, fmt.Errorf("unknown node kind: %v", n.Kind)
}

func (b *builder) buildOperand(operand, parent *parser.Node) (fragment, error) {
	if operand == nil {
		return fragment{}, fmt.Errorf("%v node lacks an operand", parent.Kind)
	}
	return b.build(operand)
}
