package parser

import (
	"fmt"
	"io"
)

// SemanticActionSet is a set of semantic actions a parser calls.
type SemanticActionSet interface {
	// Shift runs when the parser shifts a symbol onto a state stack. `tok` is a token corresponding to the symbol.
	Shift(tok VToken)

	// Reduce runs when the parser reduces an RHS of a production to its LHS. `prodNum` is a number of the production.
	Reduce(prodNum int)

	// Accept runs when the parser accepts an input. `pending` is the number of symbols on top of the stack
	// that complete the start production without being reduced; it is zero when the input was reduced to
	// the start symbol before acceptance.
	Accept(pending int)
}

var (
	_ SemanticActionSet = ReduceFunc(nil)
	_ SemanticActionSet = &TraceActionSet{}
	_ SemanticActionSet = &SyntaxTreeActionSet{}
)

// ReduceFunc reports reductions only.
type ReduceFunc func(prodNum int)

func (f ReduceFunc) Shift(tok VToken) {}

func (f ReduceFunc) Reduce(prodNum int) {
	f(prodNum)
}

func (f ReduceFunc) Accept(pending int) {}

// TraceActionSet writes one line per parser action.
type TraceActionSet struct {
	gram Grammar
	w    io.Writer
}

func NewTraceActionSet(gram Grammar, w io.Writer) *TraceActionSet {
	return &TraceActionSet{
		gram: gram,
		w:    w,
	}
}

func (a *TraceActionSet) Shift(tok VToken) {
	fmt.Fprintf(a.w, "shift  %v %#v\n", a.gram.Terminal(tok.TerminalID()), tok.Lexeme())
}

func (a *TraceActionSet) Reduce(prodNum int) {
	fmt.Fprintf(a.w, "reduce %v: %v (%v symbols)\n", prodNum, a.gram.NonTerminal(a.gram.LHS(prodNum)), a.gram.AlternativeSymbolCount(prodNum))
}

func (a *TraceActionSet) Accept(pending int) {
	fmt.Fprintln(a.w, "ACCEPT")
}

type NodeType int

const (
	NodeTypeTerminal = NodeType(iota)
	NodeTypeNonTerminal
)

// Node is a node of a concrete syntax tree.
type Node struct {
	Type     NodeType
	KindName string
	Text     string
	Index    int
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Type == NodeTypeTerminal {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

// SyntaxTreeActionSet is a implementation of SemanticActionSet interface and constructs a concrete syntax tree.
type SyntaxTreeActionSet struct {
	gram     Grammar
	semStack []*Node
	tree     *Node
}

func NewSyntaxTreeActionSet(gram Grammar) *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{
		gram: gram,
	}
}

func (a *SyntaxTreeActionSet) Shift(tok VToken) {
	a.semStack = append(a.semStack, &Node{
		Type:     NodeTypeTerminal,
		KindName: tok.KindName(),
		Text:     tok.Lexeme(),
		Index:    tok.Index(),
	})
}

func (a *SyntaxTreeActionSet) Reduce(prodNum int) {
	// When an alternative is empty, `n` will be 0, and `handle` will be empty slice.
	n := a.gram.AlternativeSymbolCount(prodNum)
	handle := a.pop(n)
	a.semStack = append(a.semStack, &Node{
		Type:     NodeTypeNonTerminal,
		KindName: a.gram.NonTerminal(a.gram.LHS(prodNum)),
		Children: handle,
	})
}

func (a *SyntaxTreeActionSet) Accept(pending int) {
	if pending == 0 {
		if len(a.semStack) > 0 {
			a.tree = a.semStack[len(a.semStack)-1]
		}
		return
	}
	a.tree = &Node{
		Type:     NodeTypeNonTerminal,
		KindName: a.gram.NonTerminal(a.gram.StartSymbol()),
		Children: a.pop(pending),
	}
}

// Tree returns a syntax tree when the parser has accepted an input. If a syntax error occurs, the return value is nil.
func (a *SyntaxTreeActionSet) Tree() *Node {
	return a.tree
}

func (a *SyntaxTreeActionSet) pop(n int) []*Node {
	if n > len(a.semStack) {
		n = len(a.semStack)
	}
	handle := make([]*Node, n)
	copy(handle, a.semStack[len(a.semStack)-n:])
	a.semStack = a.semStack[:len(a.semStack)-n]
	return handle
}
