package parser

import "fmt"

// NodeType represents the semantic role of an AST node
type NodeType string

// Node types the canonicalizer and renderer dispatch on. Everything else is
// NodeGeneric and keeps its tree-sitter kind in Node.Kind.
const (
	// Module and structure
	NodeModule NodeType = "Module"
	NodeBlock  NodeType = "Block"

	// Definitions
	NodeFunctionDef NodeType = "FunctionDef"
	NodeClassDef    NodeType = "ClassDef"
	NodeDecorator   NodeType = "Decorator"
	NodeArguments   NodeType = "Arguments"
	NodeArg         NodeType = "Arg"
	NodeLambda      NodeType = "Lambda"

	// Statements and expressions
	NodeExpr           NodeType = "Expr"
	NodeConstant       NodeType = "Constant"
	NodeFormattedValue NodeType = "FormattedValue"
	NodeKeyword        NodeType = "Keyword"

	// Identifiers
	NodeName       NodeType = "Name"       // a reference that participates in renaming
	NodeIdentifier NodeType = "Identifier" // a declaration or attribute that is left alone

	// Leaves and everything else
	NodeToken   NodeType = "Token"
	NodeGeneric NodeType = "Generic"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	StartByte int
	EndByte   int
}

// String returns "file:line:col".
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.StartLine, l.StartCol)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node is an owned, mutable syntax tree node built from a tree-sitter CST.
type Node struct {
	Type     NodeType
	Kind     string // tree-sitter node kind, "(" for anonymous tokens
	Field    string // field name under the parent, if any
	Value    string // source text for leaves and string literals
	Name     string // declared name for function and class definitions
	Children []*Node
	Location Location
	Parent   *Node
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType, kind string) *Node {
	return &Node{
		Type:     nodeType,
		Kind:     kind,
		Children: []*Node{},
	}
}

// NewLeaf creates a leaf node carrying text
func NewLeaf(nodeType NodeType, kind, value string) *Node {
	n := NewNode(nodeType, kind)
	n.Value = value
	return n
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

// RemoveChild removes the child at index i and clears its parent link.
func (n *Node) RemoveChild(i int) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children[i].Parent = nil
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

// ChildByField returns the first child stored under the given field name
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// NamedChildren returns the children that are not anonymous tokens
func (n *Node) NamedChildren() []*Node {
	var named []*Node
	for _, c := range n.Children {
		if c.Type != NodeToken {
			named = append(named, c)
		}
	}
	return named
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk traverses the AST in pre-order and calls the visitor function for
// each node. Returning false skips the node's children.
func (n *Node) Walk(visitor func(*Node) bool) {
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// Find returns all nodes that match the predicate, in pre-order
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var results []*Node
	n.Walk(func(node *Node) bool {
		if predicate(node) {
			results = append(results, node)
		}
		return true
	})
	return results
}

// FindByType returns all nodes of the specified type
func (n *Node) FindByType(nodeType NodeType) []*Node {
	return n.Find(func(node *Node) bool {
		return node.Type == nodeType
	})
}

// String returns a one-line description of the node
func (n *Node) String() string {
	if n.Value != "" {
		return fmt.Sprintf("%s(%s %q)", n.Type, n.Kind, n.Value)
	}
	if n.Name != "" {
		return fmt.Sprintf("%s(%s %s)", n.Type, n.Kind, n.Name)
	}
	return fmt.Sprintf("%s(%s)", n.Type, n.Kind)
}
