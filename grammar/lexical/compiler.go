package lexical

import (
	"fmt"
	"strings"

	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/dfa"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/nfa"
	psr "github.com/AlrayQiu/TLARCCompiler/grammar/lexical/parser"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CompileError struct {
	Kind   spec.LexKindName
	Cause  error
	Detail string
}

func (e *CompileError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%v: %v: %v", e.Kind, e.Cause, e.Detail)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// CompiledLex holds one minimized DFA per category in description order.
type CompiledLex struct {
	KindNames []spec.LexKindName
	DFAs      []*dfa.DFA
}

// Spec converts every DFA into a compressed transition table.
func (c *CompiledLex) Spec() (*spec.LexicalSpec, error) {
	tabs := make([]*spec.TransitionTable, len(c.DFAs))
	for i, d := range c.DFAs {
		tab, err := d.TransitionTable()
		if err != nil {
			return nil, errors.Wrapf(err, "category %v", c.KindNames[i])
		}
		tabs[i] = tab
	}
	return &spec.LexicalSpec{
		KindNames: c.KindNames,
		DFAs:      tabs,
	}, nil
}

// FromSpec restores compiled DFAs from their portable form.
func FromSpec(s *spec.LexicalSpec) (*CompiledLex, error) {
	if s == nil {
		return nil, fmt.Errorf("a lexical specification is required")
	}
	if len(s.KindNames) != len(s.DFAs) {
		return nil, fmt.Errorf("categories and DFAs mismatch; categories: %v, DFAs: %v", len(s.KindNames), len(s.DFAs))
	}
	c := &CompiledLex{
		KindNames: s.KindNames,
		DFAs:      make([]*dfa.DFA, len(s.DFAs)),
	}
	for i, tab := range s.DFAs {
		d, err := dfa.FromTransitionTable(tab)
		if err != nil {
			return nil, errors.Wrapf(err, "category %v", s.KindNames[i])
		}
		c.DFAs[i] = d
	}
	return c, nil
}

type compileConfig struct {
	logger         *zap.Logger
	maxDedupRounds int
}

type CompileOption func(config *compileConfig)

func WithLogger(logger *zap.Logger) CompileOption {
	return func(config *compileConfig) {
		if logger != nil {
			config.logger = logger
		}
	}
}

func WithMaxDedupRounds(n int) CompileOption {
	return func(config *compileConfig) {
		config.maxDedupRounds = n
	}
}

// Compile turns every entry into a minimized DFA. Entries are compiled independently and all
// failures are reported; when any entry fails, no result is returned.
func Compile(lexspec *LexSpec, opts ...CompileOption) (*CompiledLex, error, []*CompileError) {
	config := &compileConfig{
		logger:         zap.NewNop(),
		maxDedupRounds: dfa.DefaultMaxDedupRounds,
	}
	for _, opt := range opts {
		opt(config)
	}

	err := lexspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid token description:\n%w", err), nil
	}

	compiled := &CompiledLex{}
	var cerrs []*CompileError
	for _, e := range lexspec.Entries {
		d, cerr := compile(e, config)
		if cerr != nil {
			cerrs = append(cerrs, cerr)
			continue
		}
		compiled.KindNames = append(compiled.KindNames, e.Kind)
		compiled.DFAs = append(compiled.DFAs, d)
	}
	if len(cerrs) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "%v", cerrs[0])
		for _, cerr := range cerrs[1:] {
			fmt.Fprintf(&b, "\n%v", cerr)
		}
		return nil, fmt.Errorf("failed to compile %v categories:\n%v", len(cerrs), b.String()), cerrs
	}

	return compiled, nil, nil
}

func compile(e *LexEntry, config *compileConfig) (*dfa.DFA, *CompileError) {
	root, err := psr.Parse(e.Pattern)
	if err != nil {
		cerr := &CompileError{
			Kind:  e.Kind,
			Cause: err,
		}
		var synErr *psr.SyntaxError
		if errors.As(err, &synErr) {
			cerr.Cause = synErr.Cause
			cerr.Detail = synErr.Detail
		}
		return nil, cerr
	}

	n, err := nfa.Build(root)
	if err != nil {
		return nil, &CompileError{
			Kind:  e.Kind,
			Cause: err,
		}
	}
	d := dfa.GenDFA(n)
	m, err := dfa.Minimize(d,
		dfa.WithMaxDedupRounds(config.maxDedupRounds),
		dfa.WithLogger(config.logger.With(zap.String("category", e.Kind.String()))))
	if err != nil {
		return nil, &CompileError{
			Kind:  e.Kind,
			Cause: err,
		}
	}

	config.logger.Debug("compiled a category",
		zap.String("category", e.Kind.String()),
		zap.Int("nfa_nodes", len(n.Nodes)),
		zap.Int("dfa_nodes", len(d.Nodes())),
		zap.Int("minimized_nodes", len(m.Nodes())))

	return m, nil
}
