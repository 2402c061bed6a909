package analyzer

import (
	"fmt"
	"strings"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/parser"
)

// RenameTable maps original names to canonical names in order of first
// appearance.
type RenameTable struct {
	names   map[string]string
	order   []string
	newName func(index int) string
}

// NewRenameTable creates an empty table that names its n-th entry newName(n)
func NewRenameTable(newName func(index int) string) *RenameTable {
	return &RenameTable{
		names:   make(map[string]string),
		newName: newName,
	}
}

// Rename returns the canonical name for original, assigning the next one on
// first sight.
func (t *RenameTable) Rename(original string) string {
	if canonical, ok := t.names[original]; ok {
		return canonical
	}
	canonical := t.newName(len(t.order))
	t.names[original] = canonical
	t.order = append(t.order, original)
	return canonical
}

// Lookup returns the canonical name without assigning one
func (t *RenameTable) Lookup(original string) (string, bool) {
	canonical, ok := t.names[original]
	return canonical, ok
}

// Len returns the number of distinct names seen
func (t *RenameTable) Len() int {
	return len(t.order)
}

// Originals returns the original names in assignment order
func (t *RenameTable) Originals() []string {
	return append([]string(nil), t.order...)
}

func functionName(index int) string {
	return fmt.Sprintf("function%x", index)
}

func argumentName(index int) string {
	return fmt.Sprintf("arg%d", index)
}

func identifierName(index int) string {
	return fmt.Sprintf("id_%d", index)
}

// Canonicalizer erases naming differences from a syntax tree. Function
// definitions are renamed in order of first appearance, parameters get
// positional names, leading docstrings are dropped and every remaining name
// reference is renamed in order of first appearance.
//
// The renaming tables are fields of the Canonicalizer and are reset on every
// call, so one instance can serve many files sequentially but must not be
// shared between goroutines.
type Canonicalizer struct {
	options   domain.CanonicalizeOptions
	functions *RenameTable
	names     *RenameTable
}

// NewCanonicalizer creates a canonicalizer with the given options
func NewCanonicalizer(options domain.CanonicalizeOptions) *Canonicalizer {
	return &Canonicalizer{
		options:   options,
		functions: NewRenameTable(functionName),
		names:     NewRenameTable(identifierName),
	}
}

// Canonicalize rewrites root in place and returns it. A function definition
// without a name, parameter list or body fails with a StructuralError before
// anything is modified.
func (c *Canonicalizer) Canonicalize(root *parser.Node) (*parser.Node, error) {
	if root == nil {
		return nil, domain.NewStructuralError("syntax tree is nil", nil)
	}

	c.functions = NewRenameTable(functionName)
	c.names = NewRenameTable(identifierName)

	validator := parser.NewValidatorVisitor()
	root.Accept(validator)
	if err := validator.Err(); err != nil {
		return nil, domain.NewStructuralError("cannot canonicalize function definition", err)
	}

	// Pass A: function names, parameters and docstrings, outer functions first
	root.Walk(func(n *parser.Node) bool {
		if n.Type == parser.NodeFunctionDef {
			c.rewriteFunction(n)
		}
		return true
	})

	// Pass B: free name references
	if c.options.NormalizeIdentifiers {
		root.Walk(func(n *parser.Node) bool {
			if n.Type == parser.NodeName {
				n.Value = c.names.Rename(n.Value)
			}
			return true
		})
	}

	return root, nil
}

// Functions returns the function table of the last canonicalization
func (c *Canonicalizer) Functions() *RenameTable {
	return c.functions
}

// Names returns the identifier table of the last canonicalization
func (c *Canonicalizer) Names() *RenameTable {
	return c.names
}

func (c *Canonicalizer) rewriteFunction(fn *parser.Node) {
	if c.options.NormalizeFunctions {
		name := fn.ChildByField("name")
		canonical := c.functions.Rename(name.Value)
		name.Value = canonical
		fn.Name = canonical

		index := 0
		fn.ChildByField("parameters").Walk(func(n *parser.Node) bool {
			if n.Type == parser.NodeArg {
				n.Value = argumentName(index)
				index++
			}
			return true
		})

		// Only the name, parameters, body and decorators survive a rewrite.
		for i := len(fn.Children) - 1; i >= 0; i-- {
			child := fn.Children[i]
			if child.Field == "return_type" || child.Field == "type_parameters" ||
				(child.Type == parser.NodeToken && child.Value == "->") {
				fn.RemoveChild(i)
			}
		}
	}

	if c.options.StripDocstrings {
		body := fn.ChildByField("body")
		if len(body.Children) > 0 && IsDocstring(body.Children[0]) {
			body.RemoveChild(0)
		}
	}
}

// IsDocstring reports whether stmt is an expression statement holding
// nothing but a plain string literal. f-strings and bytes do not count.
func IsDocstring(stmt *parser.Node) bool {
	if stmt == nil || stmt.Type != parser.NodeExpr || len(stmt.Children) != 1 {
		return false
	}
	return isPlainString(stmt.Children[0])
}

func isPlainString(n *parser.Node) bool {
	switch n.Kind {
	case "string":
		prefix := strings.ToLower(stringPrefix(n.Value))
		return !strings.ContainsAny(prefix, "fbt")
	case "concatenated_string":
		parts := n.NamedChildren()
		if len(parts) == 0 {
			return false
		}
		for _, part := range parts {
			if !isPlainString(part) {
				return false
			}
		}
		return true
	case "parenthesized_expression":
		inner := n.NamedChildren()
		return len(inner) == 1 && isPlainString(inner[0])
	}
	return false
}

// stringPrefix returns the letters before the opening quote
func stringPrefix(literal string) string {
	if i := strings.IndexAny(literal, `"'`); i >= 0 {
		return literal[:i]
	}
	return ""
}
