package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags = struct {
	config   *string
	logLevel *string
}{}

var (
	cfg    = defaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tlarc",
	Short: "Generate a lexer and an LALR(1) parsing table from a token description and a grammar",
	Long: `tlarc provides the following features:
- Compiles a token description into one minimized DFA per category.
- Compiles a grammar into LALR(1) ACTION and GOTO tables.
- Scans and parses a source text with the compiled front end.
  This feature is primarily aimed at debugging the description and the grammar.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "TOML configuration file path")
	rootFlags.logLevel = rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides the configuration file")
}

func setUp(cmd *cobra.Command, args []string) error {
	c := defaultConfig()
	if *rootFlags.config != "" {
		var err error
		c, err = loadConfig(*rootFlags.config)
		if err != nil {
			return err
		}
	}
	if *rootFlags.logLevel != "" {
		c.Log.Level = *rootFlags.logLevel
	}
	if err := c.validate(); err != nil {
		return err
	}

	l, err := newLogger(c.Log.Level)
	if err != nil {
		return err
	}
	cfg = c
	logger = l
	return nil
}

func Execute() error {
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}
