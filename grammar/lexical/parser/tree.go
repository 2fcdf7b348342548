package parser

import (
	"fmt"
	"strings"
)

type NodeKind string

const (
	NodeKindCharacter = NodeKind("character")
	NodeKindConcat    = NodeKind("concat")
	NodeKindAlternate = NodeKind("alternate")
	NodeKindClosure   = NodeKind("closure")
	NodeKindEpsilon   = NodeKind("epsilon")
)

// Node is a node of a regular expression tree. Char is set for character nodes. Left and
// Right are the operands of concat and alternate nodes; a closure keeps its operand in Left.
type Node struct {
	Kind  NodeKind
	Char  rune
	Left  *Node
	Right *Node
}

func newCharacterNode(c rune) *Node {
	return &Node{
		Kind: NodeKindCharacter,
		Char: c,
	}
}

func newConcatNode(left, right *Node) *Node {
	return &Node{
		Kind:  NodeKindConcat,
		Left:  left,
		Right: right,
	}
}

func newAlternateNode(left, right *Node) *Node {
	return &Node{
		Kind:  NodeKindAlternate,
		Left:  left,
		Right: right,
	}
}

func newClosureNode(operand *Node) *Node {
	return &Node{
		Kind: NodeKindClosure,
		Left: operand,
	}
}

func newEpsilonNode() *Node {
	return &Node{
		Kind: NodeKindEpsilon,
	}
}

// String returns a fully parenthesized form of the tree, which is mainly useful in tests.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeKindCharacter:
		b.WriteRune(n.Char)
	case NodeKindEpsilon:
		b.WriteString("()")
	case NodeKindClosure:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteString(")*")
	case NodeKindConcat:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte(' ')
		n.Right.write(b)
		b.WriteByte(')')
	case NodeKindAlternate:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte('|')
		n.Right.write(b)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%v>", n.Kind)
	}
}
