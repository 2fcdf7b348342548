package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlrayQiu/TLARCCompiler/grammar"
	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compileFlags = struct {
	description     *string
	grammar         *string
	output          *string
	reducePlacement *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a token description and a grammar into a portable front end",
		Example: `  tlarc compile -d lex.yaml -g grammar.yaml -o front-end.json`,
		Args:    cobra.NoArgs,
		RunE:    runCompile,
	}
	compileFlags.description = cmd.Flags().StringP("description", "d", "", "description file path")
	compileFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path; without a grammar only the lexical part is compiled")
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.reducePlacement = cmd.Flags().String("reduce-placement", "", "canonical or post-shift (default from the configuration)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	descPath, err := pathOrDefault(*compileFlags.description, cfg.Lexical.Description, "description")
	if err != nil {
		return err
	}
	compiled, err := readDescription(descPath)
	if err != nil {
		return err
	}
	lexSpec, err := compiled.Spec()
	if err != nil {
		return err
	}
	fe := &spec.CompiledFrontEnd{
		Lexical: lexSpec,
	}

	grmPath := *compileFlags.grammar
	if grmPath == "" {
		grmPath = cfg.Syntax.Grammar
	}
	if grmPath != "" {
		gram, err := readGrammar(grmPath)
		if err != nil {
			return err
		}
		opts, err := compileOptions(*compileFlags.reducePlacement)
		if err != nil {
			return err
		}
		tab, _, err := grammar.Compile(gram, opts...)
		if err != nil {
			return err
		}
		synSpec, err := tab.Spec()
		if err != nil {
			return err
		}
		fe.Name = gram.Name()
		fe.Syntactic = synSpec
		logger.Info("compiled the grammar",
			zap.String("grammar", grmPath),
			zap.Int("states", tab.StateCount()))
	}

	b, err := json.Marshal(fe)
	if err != nil {
		return err
	}
	if *compileFlags.output == "" {
		_, err = fmt.Fprintln(os.Stdout, string(b))
		return err
	}
	if err := os.WriteFile(*compileFlags.output, b, 0644); err != nil {
		return fmt.Errorf("Cannot write an output file %s: %w", *compileFlags.output, err)
	}
	return nil
}
