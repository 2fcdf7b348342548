package main

import (
	"fmt"

	"github.com/AlrayQiu/TLARCCompiler/grammar"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical/dfa"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is read from a TOML file:
//
//	[log]
//	level = "info"
//
//	[lexical]
//	description = "descriptions/lex.yaml"
//	max_dedup_rounds = 64
//
//	[syntax]
//	grammar = "descriptions/grammar.yaml"
//	reduce_placement = "canonical"
type Config struct {
	Log     LogConfig     `toml:"log"`
	Lexical LexicalConfig `toml:"lexical"`
	Syntax  SyntaxConfig  `toml:"syntax"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type LexicalConfig struct {
	// Description is used when a command is given no description path.
	Description    string `toml:"description"`
	MaxDedupRounds int    `toml:"max_dedup_rounds"`
}

type SyntaxConfig struct {
	// Grammar is used when a command is given no grammar path.
	Grammar         string `toml:"grammar"`
	ReducePlacement string `toml:"reduce_placement"`
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "warn",
		},
		Lexical: LexicalConfig{
			MaxDedupRounds: dfa.DefaultMaxDedupRounds,
		},
		Syntax: SyntaxConfig{
			ReducePlacement: string(grammar.ReducePlacementCanonical),
		},
	}
}

// loadConfig overlays the file on the defaults.
func loadConfig(path string) (*Config, error) {
	c := defaultConfig()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read the configuration file %v", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown configuration keys in %v: %v", path, undecoded)
	}
	return c, nil
}

func (c *Config) validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Lexical.MaxDedupRounds <= 0 {
		return fmt.Errorf("lexical.max_dedup_rounds must be >=1: %v", c.Lexical.MaxDedupRounds)
	}
	if _, err := grammar.ParseReducePlacement(c.Syntax.ReducePlacement); err != nil {
		return err
	}
	return nil
}

func (c *Config) reducePlacement() grammar.ReducePlacement {
	p, _ := grammar.ParseReducePlacement(c.Syntax.ReducePlacement)
	return p
}

func newLogger(level string) (*zap.Logger, error) {
	lv, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lv
	zc.DisableStacktrace = true
	return zc.Build()
}
