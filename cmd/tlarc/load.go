package main

import (
	"encoding/json"
	"fmt"
	"os"

	verr "github.com/AlrayQiu/TLARCCompiler/error"
	"github.com/AlrayQiu/TLARCCompiler/grammar"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
	"github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
)

// pathOrDefault returns the path given on the command line, falling back to the configured one.
func pathOrDefault(arg string, configured string, what string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if configured != "" {
		return configured, nil
	}
	return "", fmt.Errorf("a %v file is required", what)
}

func annotateSpecError(err error, path string) error {
	switch e := err.(type) {
	case verr.SpecErrors:
		e.SetFilePath(path)
	case *verr.SpecError:
		e.FilePath = path
		e.SourceName = path
	}
	return err
}

func readDescription(path string) (*lexical.CompiledLex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the description file %s: %w", path, err)
	}
	defer f.Close()

	desc, err := parser.ParseDescription(f)
	if err != nil {
		return nil, annotateSpecError(err, path)
	}

	s := &lexical.LexSpec{}
	for _, e := range desc.Entries {
		s.Entries = append(s.Entries, &lexical.LexEntry{
			Kind:    spec.LexKindName(e.Kind),
			Pattern: e.Pattern,
		})
	}
	// Every compile error is already listed in err.
	compiled, err, _ := lexical.Compile(s,
		lexical.WithLogger(logger),
		lexical.WithMaxDedupRounds(cfg.Lexical.MaxDedupRounds))
	if err != nil {
		return nil, err
	}
	return compiled, nil
}

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := parser.ParseGrammar(f)
	if err != nil {
		return nil, annotateSpecError(err, path)
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, annotateSpecError(err, path)
	}
	return gram, nil
}

func readCompiledFrontEnd(path string) (*spec.CompiledFrontEnd, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fe := &spec.CompiledFrontEnd{}
	err = json.Unmarshal(d, fe)
	if err != nil {
		return nil, err
	}
	if fe.Lexical == nil {
		return nil, fmt.Errorf("%v has no lexical specification", path)
	}

	return fe, nil
}
