package analyzer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/parser"
)

func canonical(t *testing.T, source string) string {
	t.Helper()
	return canonicalWith(t, domain.DefaultCanonicalizeOptions(), source)
}

func canonicalWith(t *testing.T, opts domain.CanonicalizeOptions, source string) string {
	t.Helper()
	root, err := parser.New().ParseAST(context.Background(), "test.py", []byte(source))
	require.NoError(t, err)
	root, err = NewCanonicalizer(opts).Canonicalize(root)
	require.NoError(t, err)
	return parser.Render(root)
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "function parameter and reference",
			source:   "def foo(x): return x + 1",
			expected: "def function0(arg0):\n    return id_0 + 1",
		},
		{
			name:     "docstring stripped",
			source:   "def foo():\n    \"doc\"\n    return 1\n",
			expected: "def function0():\n    return 1",
		},
		{
			name:     "empty body after stripping",
			source:   "def f():\n    \"\"\"only doc\"\"\"\n",
			expected: "def function0():",
		},
		{
			name:     "only the first statement is considered",
			source:   "def f():\n    \"a\"\n    \"b\"\n",
			expected: "def function0():\n    'b'",
		},
		{
			name:     "f-string is not a docstring",
			source:   "def f():\n    f\"doc\"\n    return 1\n",
			expected: "def function0():\n    f\"doc\"\n    return 1",
		},
		{
			name:     "bytes is not a docstring",
			source:   "def f():\n    b\"doc\"\n",
			expected: "def function0():\n    b'doc'",
		},
		{
			name:     "raw and concatenated strings are docstrings",
			source:   "def f():\n    r\"a\" \"b\"\n    return 2\n",
			expected: "def function0():\n    return 2",
		},
		{
			name:     "module docstring kept",
			source:   "\"mod doc\"\nx = 1\n",
			expected: "'mod doc'\nid_0 = 1",
		},
		{
			name: "nested functions",
			source: `def outer(a):
    def inner(b):
        return a + b
    return inner
`,
			expected: "def function0(arg0):\n    def function1(arg0):\n        return id_0 + id_1\n    return id_2",
		},
		{
			name: "methods renamed and class name kept",
			source: `class Stack:
    def push(self, item):
        self.items.append(item)
`,
			expected: "class Stack:\n    def function0(arg0, arg1):\n        id_0.items.append(id_1)",
		},
		{
			name:     "every parameter kind is positional",
			source:   "def f(a, *args, b=1, **kw):\n    return a\n",
			expected: "def function0(arg0, *arg1, arg2=1, **arg3):\n    return id_0",
		},
		{
			name:     "lambda parameters are not renamed",
			source:   "g = lambda v: v * 2\n",
			expected: "id_0 = lambda v: id_1 * 2",
		},
		{
			name:     "names inside f-strings",
			source:   "print(f\"{x}\")\n",
			expected: "id_0(f\"{id_1}\")",
		},
		{
			name:     "return annotation dropped",
			source:   "def f() -> int:\n    return x\n",
			expected: "def function0():\n    return id_0",
		},
		{
			name:     "parameter annotations kept",
			source:   "def f(a: int) -> str:\n    return a\n",
			expected: "def function0(arg0: id_0):\n    return id_1",
		},
		{
			name:     "class pattern renamed and keyword kept",
			source:   "match p:\n    case Point(x=0):\n        pass\n",
			expected: "match id_0:\n    case id_1(x=0):\n        pass",
		},
		{
			name:     "empty module",
			source:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, canonical(t, tt.source))
		})
	}
}

func TestCanonicalize_ConsistentRenamingScoresOne(t *testing.T) {
	a := `import math

def area(radius):
    """Area of a circle."""
    return math.pi * radius ** 2

def total(shapes):
    result = 0
    for shape in shapes:
        result += area(shape)
    return result
`
	b := `import math

def surface(r):
    return math.pi * r ** 2

def accumulate(items):
    acc = 0
    for it in items:
        acc += surface(it)
    return acc
`
	ca, cb := canonical(t, a), canonical(t, b)
	assert.Equal(t, ca, cb)
	assert.Equal(t, 1.0, Compare(ca, cb).Score)
}

func TestCanonicalize_FormattingDoesNotCount(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "return annotation",
			a:    "def f() -> int:\n    return x\n",
			b:    "def g():\n    return x\n",
		},
		{
			name: "quotes and parentheses",
			a:    "x = \"a\"\ny = (1)\n",
			b:    "x = 'a'\ny = 1\n",
		},
		{
			name: "trailing commas and slices",
			a:    "v = f(s[1: 2], t,)\n",
			b:    "v = f(s[1:2], t)\n",
		},
		{
			name: "keyword pattern spacing",
			a:    "match p:\n    case Point(x = 0):\n        pass\n",
			b:    "match q:\n    case Pt(x=0):\n        pass\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, cb := canonical(t, tt.a), canonical(t, tt.b)
			assert.Equal(t, ca, cb)
			assert.Equal(t, 1.0, Compare(ca, cb).Score)
		})
	}
}

func TestCanonicalize_OneLinerMatchesBlock(t *testing.T) {
	assert.Equal(t,
		canonical(t, "def foo(x): return x + 1"),
		canonical(t, "def bar(y):\n    return y + 1\n"))
}

func TestCanonicalize_Deterministic(t *testing.T) {
	source := "def f(a):\n    b = a\n    return g(b)\n"
	assert.Equal(t, canonical(t, source), canonical(t, source))
}

func TestCanonicalize_HexFunctionNames(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 17; i++ {
		fmt.Fprintf(&sb, "def f%d():\n    pass\n", i)
	}
	root, err := parser.New().ParseAST(context.Background(), "hex.py", []byte(sb.String()))
	require.NoError(t, err)

	c := NewCanonicalizer(domain.DefaultCanonicalizeOptions())
	_, err = c.Canonicalize(root)
	require.NoError(t, err)

	funcs := root.FindByType(parser.NodeFunctionDef)
	require.Len(t, funcs, 17)
	assert.Equal(t, "function9", funcs[9].Name)
	assert.Equal(t, "functiona", funcs[10].Name)
	assert.Equal(t, "functionf", funcs[15].Name)
	assert.Equal(t, "function10", funcs[16].Name)
	assert.Equal(t, 17, c.Functions().Len())
}

func TestCanonicalize_RedefinitionSharesName(t *testing.T) {
	root, err := parser.New().ParseAST(context.Background(), "dup.py",
		[]byte("def foo():\n    pass\ndef bar():\n    pass\ndef foo():\n    pass\n"))
	require.NoError(t, err)

	c := NewCanonicalizer(domain.DefaultCanonicalizeOptions())
	_, err = c.Canonicalize(root)
	require.NoError(t, err)

	funcs := root.FindByType(parser.NodeFunctionDef)
	assert.Equal(t, "function0", funcs[0].Name)
	assert.Equal(t, "function1", funcs[1].Name)
	assert.Equal(t, "function0", funcs[2].Name)
	assert.Equal(t, []string{"foo", "bar"}, c.Functions().Originals())
}

func TestCanonicalize_TablesResetBetweenFiles(t *testing.T) {
	p := parser.New()
	c := NewCanonicalizer(domain.DefaultCanonicalizeOptions())

	first, err := p.ParseAST(context.Background(), "a.py", []byte("def a():\n    return x\n"))
	require.NoError(t, err)
	_, err = c.Canonicalize(first)
	require.NoError(t, err)

	second, err := p.ParseAST(context.Background(), "b.py", []byte("def b():\n    return y\n"))
	require.NoError(t, err)
	_, err = c.Canonicalize(second)
	require.NoError(t, err)

	assert.Equal(t, parser.Render(first), parser.Render(second))
	assert.Equal(t, 1, c.Names().Len())
	canonicalY, ok := c.Names().Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, "id_0", canonicalY)
}

func TestCanonicalize_Options(t *testing.T) {
	source := "def foo(x):\n    \"doc\"\n    return x\n"

	t.Run("identifiers off", func(t *testing.T) {
		opts := domain.DefaultCanonicalizeOptions()
		opts.NormalizeIdentifiers = false
		assert.Equal(t, "def function0(arg0):\n    return x", canonicalWith(t, opts, source))
	})

	t.Run("functions off", func(t *testing.T) {
		opts := domain.DefaultCanonicalizeOptions()
		opts.NormalizeFunctions = false
		assert.Equal(t, "def foo(x):\n    return id_0", canonicalWith(t, opts, source))
	})

	t.Run("docstrings kept", func(t *testing.T) {
		opts := domain.DefaultCanonicalizeOptions()
		opts.StripDocstrings = false
		assert.Equal(t, "def function0(arg0):\n    'doc'\n    return id_0", canonicalWith(t, opts, source))
	})
}

func TestCanonicalize_StructuralError(t *testing.T) {
	module := parser.NewNode(parser.NodeModule, "module")
	fn := parser.NewNode(parser.NodeFunctionDef, "function_definition")
	name := parser.NewLeaf(parser.NodeIdentifier, "identifier", "broken")
	name.Field = "name"
	params := parser.NewNode(parser.NodeArguments, "parameters")
	params.Field = "parameters"
	fn.AddChild(name)
	fn.AddChild(params)
	module.AddChild(fn)

	_, err := NewCanonicalizer(domain.DefaultCanonicalizeOptions()).Canonicalize(module)
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeStructuralError))
	assert.Contains(t, err.Error(), "function has no body")
	assert.Equal(t, "broken", name.Value, "tree must not be modified on failure")
}

func TestCanonicalize_NilRoot(t *testing.T) {
	_, err := NewCanonicalizer(domain.DefaultCanonicalizeOptions()).Canonicalize(nil)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeStructuralError))
}

func TestIsDocstring(t *testing.T) {
	str := func(text string) *parser.Node {
		stmt := parser.NewNode(parser.NodeExpr, "expression_statement")
		stmt.AddChild(parser.NewLeaf(parser.NodeConstant, "string", text))
		return stmt
	}

	assert.True(t, IsDocstring(str(`"doc"`)))
	assert.True(t, IsDocstring(str(`'''doc'''`)))
	assert.True(t, IsDocstring(str(`u"doc"`)))
	assert.True(t, IsDocstring(str(`R"doc"`)))
	assert.False(t, IsDocstring(str(`F"doc"`)))
	assert.False(t, IsDocstring(str(`rb"doc"`)))
	assert.False(t, IsDocstring(nil))
	assert.False(t, IsDocstring(parser.NewNode(parser.NodeGeneric, "return_statement")))
}
