package lexical

import (
	"errors"
	"strings"
	"testing"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLexSpec_Validate(t *testing.T) {
	tests := []struct {
		caption string
		entries []*LexEntry
	}{
		{
			caption: "a description needs an entry",
		},
		{
			caption: "a category needs a name",
			entries: []*LexEntry{
				{Kind: "", Pattern: "a"},
			},
		},
		{
			caption: "categories must be unique",
			entries: []*LexEntry{
				{Kind: "Int", Pattern: "0"},
				{Kind: "Int", Pattern: "1"},
			},
		},
		{
			caption: "a pattern must not be empty",
			entries: []*LexEntry{
				{Kind: "Int", Pattern: ""},
			},
		},
		{
			caption: "the end-of-input category is reserved",
			entries: []*LexEntry{
				{Kind: "EOI", Pattern: "end"},
			},
		},
		{
			caption: "the epsilon category is reserved",
			entries: []*LexEntry{
				{Kind: "Epsilon", Pattern: "e"},
			},
		},
		{
			caption: "categories must be spelled consistently",
			entries: []*LexEntry{
				{Kind: "left_paren", Pattern: "("},
				{Kind: "LeftParen", Pattern: "("},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			s := &LexSpec{
				Entries: tt.entries,
			}
			assert.Error(t, s.Validate())
		})
	}
}

func TestSnakeCaseToUpperCamelCase(t *testing.T) {
	tests := []struct {
		snake string
		camel string
	}{
		{snake: "foo", camel: "Foo"},
		{snake: "foo_bar", camel: "FooBar"},
		{snake: "Foo", camel: "Foo"},
		{snake: "fooBar", camel: "FooBar"},
		{snake: "_foo__bar_", camel: "FooBar"},
	}
	for _, tt := range tests {
		t.Run(tt.snake, func(t *testing.T) {
			assert.Equal(t, tt.camel, SnakeCaseToUpperCamelCase(tt.snake))
		})
	}
}

func TestCompile(t *testing.T) {
	s := &LexSpec{
		Entries: []*LexEntry{
			{Kind: "Keyword", Pattern: "process|thread"},
			{Kind: "Int", Pattern: "(0|1|2|3|4|5|6|7|8|9)(0|1|2|3|4|5|6|7|8|9)*"},
			{Kind: "Delimiters", Pattern: "{|}"},
		},
	}
	compiled, err, cerrs := Compile(s, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Empty(t, cerrs)
	assert.Equal(t, []string{"Keyword", "Int", "Delimiters"}, kindNames(compiled))
	require.Len(t, compiled.DFAs, 3)
	assert.True(t, compiled.DFAs[0].Accepts("thread"))
	assert.True(t, compiled.DFAs[1].Accepts("42"))
	assert.False(t, compiled.DFAs[1].Accepts("4a"))
	assert.True(t, compiled.DFAs[2].Accepts("}"))

	lexSpec, err := compiled.Spec()
	require.NoError(t, err)
	restored, err := FromSpec(lexSpec)
	require.NoError(t, err)
	assert.Equal(t, compiled, restored)
}

func TestCompile_Errors(t *testing.T) {
	s := &LexSpec{
		Entries: []*LexEntry{
			{Kind: "Good", Pattern: "a"},
			{Kind: "Unclosed", Pattern: "(a"},
			{Kind: "Dangling", Pattern: "a|"},
			{Kind: "Stray", Pattern: "a)"},
		},
	}
	compiled, err, cerrs := Compile(s)
	assert.Nil(t, compiled)
	require.Error(t, err)
	require.Len(t, cerrs, 3)

	kinds := make([]string, len(cerrs))
	for i, cerr := range cerrs {
		kinds[i] = cerr.Kind.String()
		assert.NotNil(t, cerr.Cause)
		assert.NotEmpty(t, cerr.Detail)
	}
	assert.Equal(t, []string{"Unclosed", "Dangling", "Stray"}, kinds)
	assert.NotEqual(t, cerrs[0].Cause, cerrs[2].Cause)
	assert.True(t, errors.Is(cerrs[0], cerrs[0].Cause))
}

func TestCompile_InvalidDescription(t *testing.T) {
	compiled, err, cerrs := Compile(&LexSpec{})
	assert.Nil(t, compiled)
	assert.Error(t, err)
	assert.Empty(t, cerrs)
}

func TestFromSpec_Invalid(t *testing.T) {
	_, err := FromSpec(nil)
	assert.Error(t, err)
}

func kindNames(c *CompiledLex) []string {
	names := make([]string, len(c.KindNames))
	for i, k := range c.KindNames {
		names[i] = k.String()
	}
	return names
}

// maleeniAccepts reports whether the maleeni lexer reads the whole of s as one token of the
// pattern.
func maleeniAccepts(t *testing.T, clspec *mlspec.CompiledLexSpec, s string) bool {
	t.Helper()

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), strings.NewReader(s))
	require.NoError(t, err)
	tok, err := lex.Next()
	require.NoError(t, err)
	if tok.EOF || tok.Invalid || clspec.KindNames[tok.KindID] != "pattern" || string(tok.Lexeme) != s {
		return false
	}
	tok, err = lex.Next()
	require.NoError(t, err)
	return tok.EOF
}

// TestCompile_AgreesWithMaleeni compares whole-string acceptance against an independent lexer
// generator on patterns that are valid in both syntaxes and cannot match the empty string.
func TestCompile_AgreesWithMaleeni(t *testing.T) {
	tests := []struct {
		pattern string
		inputs  []string
	}{
		{
			pattern: "ab*",
			inputs:  []string{"a", "ab", "abb", "b", "ba", "aab", "abab"},
		},
		{
			pattern: "(a|b)*c",
			inputs:  []string{"c", "ac", "abc", "bbac", "ab", "cc", "ca"},
		},
		{
			pattern: "process|thread",
			inputs:  []string{"process", "thread", "proc", "threads", "processthread"},
		},
		{
			pattern: "(ab|a)(b|c)*d",
			inputs:  []string{"ad", "abd", "abbd", "acbd", "abcbcd", "bd", "aabd", "abdd"},
		},
		{
			pattern: "x(yz)*(y|z)",
			inputs:  []string{"xy", "xz", "xyzy", "xyzyzz", "x", "xyz", "xzy"},
		},
		{
			pattern: "(0|1)(0|1)*",
			inputs:  []string{"0", "1", "0110", "012", "2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			clspec, err, cerrs := mlcompiler.Compile(&mlspec.LexSpec{
				Entries: []*mlspec.LexEntry{
					{
						Kind:    mlspec.LexKindName("pattern"),
						Pattern: mlspec.LexPattern(tt.pattern),
					},
				},
			}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
			require.NoError(t, err)
			require.Empty(t, cerrs)

			compiled, err, _ := Compile(&LexSpec{
				Entries: []*LexEntry{
					{Kind: "pattern", Pattern: tt.pattern},
				},
			})
			require.NoError(t, err)

			for _, s := range tt.inputs {
				assert.Equal(t, maleeniAccepts(t, clspec, s), compiled.DFAs[0].Accepts(s), "input: %q", s)
			}
		})
	}
}
