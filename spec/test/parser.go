package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected or an actual syntax tree. A terminal node carries the lexeme it matched.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
	Lexeme   string
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, lexeme string) *Tree {
	return &Tree{
		Kind:   kind,
		Lexeme: lexeme,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

// Format writes the tree in the same notation a test case uses.
func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	buf.WriteString("(")
	buf.WriteString(t.Kind)
	if t.Lexeme != "" {
		fmt.Fprintf(buf, " '%v'", t.Lexeme)
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	// _ matches any symbols.
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

// TestCase consists of three parts separated by `---` lines: a free-form description, a source
// text and the tree the source is expected to parse into.
//
//	Assignment
//	---
//	process { thread { x = 1 } }
//	---
//	(Program
//	    (Keyword 'process') (Delimiters '{')
//	    (Body ...))
type TestCase struct {
	Description string
	Source      []byte
	Output      *Tree
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just tree parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	tree, err := tp.parseTree(parts[2].buf)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      tree,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

type treeTokenKind string

const (
	treeTokenKindLParen = treeTokenKind("(")
	treeTokenKindRParen = treeTokenKind(")")
	treeTokenKindName   = treeTokenKind("name")
	treeTokenKindString = treeTokenKind("string")
	treeTokenKindEOF    = treeTokenKind("<eof>")
)

type treeToken struct {
	kind treeTokenKind
	text string
	row  int
	col  int
}

// treeParser reads the notation:
//
//	tree     = "(" name [string] {tree} ")"
//	name     = any run of characters other than white space, parentheses and quotes
//	string   = "'" any characters other than "'" "'"
type treeParser struct {
	lineOffset int
	src        []byte
	ptr        int
	row        int
	col        int
	peeked     *treeToken
}

func (tp *treeParser) parseTree(src []byte) (*Tree, error) {
	tp.src = src
	tp.ptr = 0
	tp.row = 0
	tp.col = 0
	tp.peeked = nil

	t, err := tp.parseNode()
	if err != nil {
		return nil, err
	}
	tok, err := tp.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != treeTokenKindEOF {
		return nil, tp.errorf(tok, "unexpected token after the tree: %v", tok.text)
	}
	return t.Fill(), nil
}

func (tp *treeParser) parseNode() (*Tree, error) {
	tok, err := tp.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != treeTokenKindLParen {
		return nil, tp.errorf(tok, "expected '(' but got %v", tok.kind)
	}
	kind, err := tp.next()
	if err != nil {
		return nil, err
	}
	if kind.kind != treeTokenKindName {
		return nil, tp.errorf(kind, "a node must start with a kind name")
	}

	tok, err = tp.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == treeTokenKindString {
		tp.peeked = nil
		closing, err := tp.next()
		if err != nil {
			return nil, err
		}
		if closing.kind != treeTokenKindRParen {
			return nil, tp.errorf(closing, "a terminal node cannot take children")
		}
		return NewTerminalNode(kind.text, tok.text), nil
	}

	var children []*Tree
	for {
		tok, err := tp.peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case treeTokenKindRParen:
			tp.peeked = nil
			return NewNonTerminalTree(kind.text, children...), nil
		case treeTokenKindLParen:
			c, err := tp.parseNode()
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		default:
			return nil, tp.errorf(tok, "expected '(' or ')' but got %v", tok.kind)
		}
	}
}

func (tp *treeParser) errorf(tok *treeToken, format string, a ...interface{}) error {
	return fmt.Errorf("%v:%v: %v", tp.lineOffset+tok.row+1, tok.col+1, fmt.Sprintf(format, a...))
}

func (tp *treeParser) peek() (*treeToken, error) {
	if tp.peeked == nil {
		tok, err := tp.lex()
		if err != nil {
			return nil, err
		}
		tp.peeked = tok
	}
	return tp.peeked, nil
}

func (tp *treeParser) next() (*treeToken, error) {
	tok, err := tp.peek()
	if err != nil {
		return nil, err
	}
	tp.peeked = nil
	return tok, nil
}

func (tp *treeParser) read() rune {
	c, size := utf8.DecodeRune(tp.src[tp.ptr:])
	tp.ptr += size
	if c == '\n' {
		tp.row++
		tp.col = 0
	} else {
		tp.col++
	}
	return c
}

func (tp *treeParser) lex() (*treeToken, error) {
	for tp.ptr < len(tp.src) {
		c, _ := utf8.DecodeRune(tp.src[tp.ptr:])
		if !unicode.IsSpace(c) {
			break
		}
		tp.read()
	}

	tok := &treeToken{
		row: tp.row,
		col: tp.col,
	}
	if tp.ptr >= len(tp.src) {
		tok.kind = treeTokenKindEOF
		return tok, nil
	}

	switch c := tp.read(); c {
	case '(':
		tok.kind = treeTokenKindLParen
		tok.text = "("
	case ')':
		tok.kind = treeTokenKindRParen
		tok.text = ")"
	case '\'':
		var b strings.Builder
		for {
			if tp.ptr >= len(tp.src) {
				return nil, tp.errorf(tok, "unclosed string")
			}
			c := tp.read()
			if c == '\'' {
				break
			}
			b.WriteRune(c)
		}
		tok.kind = treeTokenKindString
		tok.text = b.String()
	default:
		var b strings.Builder
		b.WriteRune(c)
		for tp.ptr < len(tp.src) {
			c, _ := utf8.DecodeRune(tp.src[tp.ptr:])
			if unicode.IsSpace(c) || c == '(' || c == ')' || c == '\'' {
				break
			}
			b.WriteRune(tp.read())
		}
		tok.kind = treeTokenKindName
		tok.text = b.String()
	}
	return tok, nil
}
