package parser

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder converts tree-sitter parse trees to internal AST representation
type ASTBuilder struct {
	source []byte
	file   string
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(source []byte) *ASTBuilder {
	return &ASTBuilder{
		source: source,
	}
}

// WithFile sets the file name recorded in node locations
func (b *ASTBuilder) WithFile(path string) *ASTBuilder {
	b.file = path
	return b
}

// kindTypes maps tree-sitter kinds to the node types the rewriter cares about
var kindTypes = map[string]NodeType{
	"module":               NodeModule,
	"block":                NodeBlock,
	"function_definition":  NodeFunctionDef,
	"class_definition":     NodeClassDef,
	"decorator":            NodeDecorator,
	"parameters":           NodeArguments,
	"lambda":               NodeLambda,
	"expression_statement": NodeExpr,
	"string":               NodeConstant,
	"concatenated_string":  NodeConstant,
	"integer":              NodeConstant,
	"float":                NodeConstant,
	"true":                 NodeConstant,
	"false":                NodeConstant,
	"none":                 NodeConstant,
	"ellipsis":             NodeConstant,
	"interpolation":        NodeFormattedValue,
	"keyword_argument":     NodeKeyword,
}

// leafKinds are kept as a single node carrying their source text even when
// tree-sitter gives them children
var leafKinds = map[string]bool{
	"identifier":       true,
	"format_specifier": true,
	"type_conversion":  true,
}

// Build converts a tree-sitter tree to internal AST
func (b *ASTBuilder) Build(tree *sitter.Tree) (*Node, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("root node is nil")
	}

	return b.buildNode(rootNode, nil, "", nil), nil
}

// buildNode recursively builds AST nodes from tree-sitter nodes. prev is the
// previous sibling already built under parent.
func (b *ASTBuilder) buildNode(tsNode *sitter.Node, parent *Node, field string, prev *Node) *Node {
	kind := tsNode.Type()
	node := &Node{
		Kind:     kind,
		Field:    field,
		Location: b.getLocation(tsNode),
		Parent:   parent,
		Children: []*Node{},
	}

	switch {
	case !tsNode.IsNamed():
		node.Type = NodeToken
		node.Value = b.getNodeText(tsNode)
		return node
	case kind == "identifier" || (kind == "as_pattern_target" && tsNode.ChildCount() == 0):
		node.Type = identifierType(parent, field, prev)
		if kind == "as_pattern_target" && node.Type == NodeName && isExceptAlias(parent) {
			node.Type = NodeIdentifier
		}
		node.Value = b.getNodeText(tsNode)
		return node
	case kind == "string":
		return b.buildString(tsNode, node)
	}

	if t, ok := kindTypes[kind]; ok {
		node.Type = t
	} else {
		node.Type = NodeGeneric
	}

	if leafKinds[kind] || tsNode.ChildCount() == 0 {
		node.Value = b.getNodeText(tsNode)
		return node
	}

	var last *Node
	childCount := int(tsNode.ChildCount())
	for i := 0; i < childCount; i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		built := b.buildNode(child, node, tsNode.FieldNameForChild(i), last)
		node.AddChild(built)
		last = built
	}

	if kind == "dotted_name" {
		markPatternReference(node)
	}

	if node.Type == NodeFunctionDef || node.Type == NodeClassDef {
		if name := node.ChildByField("name"); name != nil {
			node.Name = name.Value
		}
	}

	return node
}

// buildString keeps the literal's source text and builds only its
// interpolations, so names inside f-strings take part in renaming.
func (b *ASTBuilder) buildString(tsNode *sitter.Node, node *Node) *Node {
	node.Type = NodeConstant
	node.Value = b.getNodeText(tsNode)

	var last *Node
	childCount := int(tsNode.ChildCount())
	for i := 0; i < childCount; i++ {
		child := tsNode.Child(i)
		if child == nil || child.Type() != "interpolation" {
			continue
		}
		built := b.buildNode(child, node, tsNode.FieldNameForChild(i), last)
		node.AddChild(built)
		last = built
	}
	return node
}

// identifierType decides whether an identifier is a renameable reference,
// a parameter declaration or an inert name, from where it sits in the tree.
func identifierType(parent *Node, field string, prev *Node) NodeType {
	if parent == nil {
		return NodeName
	}

	switch parent.Kind {
	case "function_definition", "class_definition":
		if field == "name" {
			return NodeIdentifier
		}
	case "attribute":
		if field == "attribute" {
			return NodeIdentifier
		}
	case "keyword_argument":
		if field == "name" {
			return NodeIdentifier
		}
	case "dotted_name", "aliased_import", "import_statement", "import_from_statement",
		"global_statement", "nonlocal_statement", "keyword_pattern":
		return NodeIdentifier
	case "except_clause", "except_group_clause":
		if prev != nil && prev.Kind == "as" {
			return NodeIdentifier
		}
	case "as_pattern_target":
		if isExceptAlias(parent) {
			return NodeIdentifier
		}
	}

	if field == "" || field == "name" {
		switch parameterScope(parent) {
		case "parameters":
			return NodeArg
		case "lambda_parameters":
			return NodeIdentifier
		}
	}

	return NodeName
}

// markPatternReference turns the head of a class or value pattern into a name
// reference. A lone identifier in a case pattern is a capture target and
// stays inert.
func markPatternReference(dotted *Node) {
	if dotted.Parent == nil {
		return
	}
	parts := dotted.NamedChildren()
	if len(parts) == 0 || parts[0].Kind != "identifier" {
		return
	}
	switch dotted.Parent.Kind {
	case "class_pattern":
		parts[0].Type = NodeName
	case "case_pattern":
		if len(parts) > 1 {
			parts[0].Type = NodeName
		}
	}
}

// parameterScope climbs through parameter wrappers and returns the kind of the
// enclosing parameter list, or "" when n is not part of a declaration.
func parameterScope(n *Node) string {
	for n != nil {
		switch n.Kind {
		case "parameters", "lambda_parameters":
			return n.Kind
		case "typed_parameter", "default_parameter", "typed_default_parameter",
			"list_splat_pattern", "dictionary_splat_pattern":
			if n.Field != "" && n.Field != "name" {
				return ""
			}
			n = n.Parent
		default:
			return ""
		}
	}
	return ""
}

// isExceptAlias reports whether n sits inside the "as NAME" part of an
// except clause. n is the as_pattern_target or the as_pattern itself.
func isExceptAlias(n *Node) bool {
	for n != nil && (n.Kind == "as_pattern_target" || n.Kind == "as_pattern") {
		n = n.Parent
	}
	return n != nil && (n.Kind == "except_clause" || n.Kind == "except_group_clause")
}

// getLocation extracts location information from a tree-sitter node
func (b *ASTBuilder) getLocation(tsNode *sitter.Node) Location {
	startPoint := tsNode.StartPoint()
	endPoint := tsNode.EndPoint()

	return Location{
		File:      b.file,
		StartLine: int(startPoint.Row) + 1,
		StartCol:  int(startPoint.Column),
		EndLine:   int(endPoint.Row) + 1,
		EndCol:    int(endPoint.Column),
		StartByte: int(tsNode.StartByte()),
		EndByte:   int(tsNode.EndByte()),
	}
}

// getNodeText gets the text content of a node
func (b *ASTBuilder) getNodeText(tsNode *sitter.Node) string {
	return tsNode.Content(b.source)
}

// isTrivia checks if a node is trivia (comments, whitespace)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" || nodeType == "line_continuation"
}
