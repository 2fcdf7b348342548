package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlrayQiu/TLARCCompiler/driver/lexer"
	"github.com/AlrayQiu/TLARCCompiler/driver/parser"
	"github.com/AlrayQiu/TLARCCompiler/grammar"
	"github.com/AlrayQiu/TLARCCompiler/grammar/lexical"
	gpsr "github.com/AlrayQiu/TLARCCompiler/spec/grammar/parser"
	tspec "github.com/AlrayQiu/TLARCCompiler/spec/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grammarSrc1 = `
start: s
productions:
  - "s -> Word:foo Word:bar Word:baz"
`

const grammarSrc2 = `
start: s
productions:
  - "s -> foos"
  - "foos -> foos Word:foo | Word:foo"
`

func newTestTester(t *testing.T, grammarSrc string) *Tester {
	t.Helper()

	compiled, err, _ := lexical.Compile(&lexical.LexSpec{
		Entries: []*lexical.LexEntry{
			{Kind: "Word", Pattern: "foo|bar|baz"},
		},
	})
	require.NoError(t, err)

	ast, err := gpsr.ParseGrammar(strings.NewReader(grammarSrc))
	require.NoError(t, err)
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	require.NoError(t, err)
	tab, _, err := grammar.Compile(g)
	require.NoError(t, err)
	synSpec, err := tab.Spec()
	require.NoError(t, err)
	gram, err := parser.NewGrammar(synSpec)
	require.NoError(t, err)

	return &Tester{
		Engine:  lexer.NewEngine(compiled),
		Grammar: gram,
	}
}

func TestTester_Run(t *testing.T) {
	tests := []struct {
		grammarSrc string
		testSrc    string
		error      bool
	}{
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo bar baz
---
(s
    (Word 'foo') (Word 'bar') (Word 'baz'))
`,
		},
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo bar baz
---
(_
    (_ 'foo') (_ 'bar') (_ 'baz'))
`,
		},
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo baz baz
---
(s
    (Word 'foo') (Word 'bar') (Word 'baz'))
`,
			error: true,
		},
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo bar baz
---
(s)
`,
			error: true,
		},
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo bar baz
---
(s
    (Word 'foo') (Word 'bar'))
`,
			error: true,
		},
		{
			grammarSrc: grammarSrc1,
			testSrc: `
Test
---
foo bar baz
---
(s
    (Word 'foo') (Word 'bar') (Word 'xxx'))
`,
			error: true,
		},
		{
			grammarSrc: grammarSrc2,
			testSrc: `
Test
---
foo foo foo
---
(s
    (foos
        (foos
            (foos
                (Word 'foo'))
            (Word 'foo'))
        (Word 'foo')))
`,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			tester := newTestTester(t, tt.grammarSrc)
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			require.NoError(t, err)
			tester.Cases = []*TestCaseWithMetadata{
				{
					TestCase: c,
				},
			}
			rs := tester.Run()
			require.Len(t, rs, 1)
			if tt.error {
				assert.Error(t, rs[0].Error)
				assert.True(t, strings.HasPrefix(rs[0].String(), "Failed"))
			} else {
				assert.NoError(t, rs[0].Error)
				assert.True(t, strings.HasPrefix(rs[0].String(), "Passed"))
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("Test\n---\nfoo bar baz\n---\n(s (Word 'foo') (Word 'bar') (Word 'baz'))\n"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "broken.txt"), []byte("Test\n---\nfoo\n"), 0600))

	cases := ListTestCases(dir)
	require.Len(t, cases, 2)
	assert.NoError(t, cases[0].Error)
	assert.Error(t, cases[1].Error)

	tester := newTestTester(t, grammarSrc1)
	tester.Cases = cases
	rs := tester.Run()
	require.Len(t, rs, 2)
	assert.NoError(t, rs[0].Error)
	assert.Error(t, rs[1].Error)

	missing := ListTestCases(filepath.Join(dir, "missing"))
	require.Len(t, missing, 1)
	assert.Error(t, missing[0].Error)
}
