package parser

import (
	"io"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Position struct {
	Row int
	Col int
}

func newPosition(n *yaml.Node) Position {
	return Position{
		Row: n.Line,
		Col: n.Column,
	}
}

// LexEntryNode is one `category: pattern` pair of a token description.
type LexEntryNode struct {
	Kind    string
	Pattern string
	Pos     Position
}

type DescriptionNode struct {
	Entries []*LexEntryNode
}

// ParseDescription reads a token description. The description is a YAML mapping whose keys
// are category names and whose values are patterns; the document order of the keys is the
// order in which categories are tried when a token is classified.
func ParseDescription(src io.Reader) (*DescriptionNode, error) {
	doc, err := readDocument(src)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &verr.SpecError{Cause: synErrEmptyDescription}
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &verr.SpecError{
			Cause: synErrNotMapping,
			Row:   doc.Line,
			Col:   doc.Column,
		}
	}

	var errs verr.SpecErrors
	root := &DescriptionNode{}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		k, v := doc.Content[i], doc.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value == "" {
			errs = append(errs, &verr.SpecError{
				Cause: synErrInvalidKindName,
				Row:   k.Line,
				Col:   k.Column,
			})
			continue
		}
		if v.Kind != yaml.ScalarNode {
			errs = append(errs, &verr.SpecError{
				Cause: synErrPatternNotString,
				Row:   v.Line,
				Col:   v.Column,
			})
			continue
		}
		root.Entries = append(root.Entries, &LexEntryNode{
			Kind:    k.Value,
			Pattern: v.Value,
			Pos:     newPosition(k),
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if len(root.Entries) == 0 {
		return nil, &verr.SpecError{Cause: synErrEmptyDescription}
	}

	return root, nil
}

// readDocument returns the top-level node of a YAML document or nil when the document is empty.
func readDocument(src io.Reader) (*yaml.Node, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read a source")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &verr.SpecError{
			Cause: errors.Wrap(err, "malformed YAML"),
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	return doc.Content[0], nil
}
