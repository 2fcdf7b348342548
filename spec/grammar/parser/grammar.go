package parser

import (
	"io"
	"strings"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"gopkg.in/yaml.v3"
)

const (
	arrow          = "->"
	altSeparator   = "|"
	epsilonMarker  = "ε"
	epsilonKeyword = "Epsilon"
)

type RootNode struct {
	Name        string
	Start       string
	StartPos    Position
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is a sequence of symbol names. An empty sequence derives the empty string.
type AlternativeNode struct {
	Symbols []string
	Pos     Position
}

// ParseGrammar reads a grammar file of the form:
//
//	name: process
//	start: Program
//	productions:
//	  - "Program -> Keyword:process Delimiters:{ Body Delimiters:}"
//	  - "Stmts -> Stmt Stmts | ε"
//
// Symbols are separated by spaces and alternatives by a standalone `|`.
func ParseGrammar(src io.Reader) (*RootNode, error) {
	doc, err := readDocument(src)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != yaml.MappingNode {
		pos := Position{}
		if doc != nil {
			pos = newPosition(doc)
		}
		return nil, &verr.SpecError{
			Cause: synErrEmptyGrammar,
			Row:   pos.Row,
			Col:   pos.Col,
		}
	}

	var errs verr.SpecErrors
	root := &RootNode{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		k, v := doc.Content[i], doc.Content[i+1]
		switch k.Value {
		case "name", "start":
			if v.Kind != yaml.ScalarNode {
				errs = append(errs, &verr.SpecError{
					Cause: synErrNotString,
					Row:   v.Line,
					Col:   v.Column,
				})
				continue
			}
			if k.Value == "name" {
				root.Name = v.Value
			} else {
				root.Start = v.Value
				root.StartPos = newPosition(v)
			}
		case "productions":
			if v.Kind != yaml.SequenceNode {
				errs = append(errs, &verr.SpecError{
					Cause: synErrProductionsNotList,
					Row:   v.Line,
					Col:   v.Column,
				})
				continue
			}
			for _, item := range v.Content {
				if item.Kind != yaml.ScalarNode {
					errs = append(errs, &verr.SpecError{
						Cause: synErrProductionsNotList,
						Row:   item.Line,
						Col:   item.Column,
					})
					continue
				}
				prod, err := ParseProduction(item.Value)
				if err != nil {
					errs = append(errs, &verr.SpecError{
						Cause: err,
						Row:   item.Line,
						Col:   item.Column,
					})
					continue
				}
				prod.Pos = newPosition(item)
				for _, alt := range prod.RHS {
					alt.Pos = prod.Pos
				}
				root.Productions = append(root.Productions, prod)
			}
		default:
			errs = append(errs, &verr.SpecError{
				Cause: synErrUnknownKey,
				Row:   k.Line,
				Col:   k.Column,
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return root, nil
}

// ParseProduction parses one `LHS -> alt | alt ...` line.
func ParseProduction(line string) (*ProductionNode, error) {
	lhs, rhs, ok := strings.Cut(line, arrow)
	if !ok {
		return nil, synErrNoArrow
	}
	lhs = strings.TrimSpace(lhs)
	if lhs == "" {
		return nil, synErrNoProductionName
	}
	if strings.ContainsAny(lhs, " \t") {
		return nil, synErrInvalidProductionLHS
	}

	prod := &ProductionNode{
		LHS: lhs,
	}
	alt := &AlternativeNode{}
	for _, f := range strings.Fields(rhs) {
		switch f {
		case altSeparator:
			prod.RHS = append(prod.RHS, alt)
			alt = &AlternativeNode{}
		case epsilonMarker, epsilonKeyword:
			// The empty string contributes no symbol.
		default:
			alt.Symbols = append(alt.Symbols, f)
		}
	}
	prod.RHS = append(prod.RHS, alt)

	return prod, nil
}
