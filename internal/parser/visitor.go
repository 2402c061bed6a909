package parser

import "fmt"

// Visitor defines the interface for visiting AST nodes
type Visitor interface {
	// Visit is called for each node in the AST.
	// Return false to skip the node's children.
	Visit(node *Node) bool
}

// Accept implements the visitor pattern for AST nodes
func (n *Node) Accept(visitor Visitor) {
	if n == nil {
		return
	}

	if !visitor.Visit(n) {
		return
	}

	// Children may be removed while visiting; iterate over a snapshot
	children := append([]*Node(nil), n.Children...)
	for _, child := range children {
		child.Accept(visitor)
	}
}

// StructureError describes a node whose shape is not what the grammar promises.
type StructureError struct {
	Node   *Node
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Node.Type, e.Node.Location, e.Reason)
}

// ValidatorVisitor checks function definitions for the parts a rewrite needs
type ValidatorVisitor struct {
	errors []*StructureError
}

// NewValidatorVisitor creates a validator
func NewValidatorVisitor() *ValidatorVisitor {
	return &ValidatorVisitor{}
}

// Visit implements the Visitor interface
func (v *ValidatorVisitor) Visit(node *Node) bool {
	if node.Type != NodeFunctionDef {
		return true
	}
	if node.ChildByField("name") == nil {
		v.errors = append(v.errors, &StructureError{Node: node, Reason: "function has no name"})
	}
	if params := node.ChildByField("parameters"); params == nil || params.Type != NodeArguments {
		v.errors = append(v.errors, &StructureError{Node: node, Reason: "function has no parameter list"})
	}
	if body := node.ChildByField("body"); body == nil || body.Type != NodeBlock {
		v.errors = append(v.errors, &StructureError{Node: node, Reason: "function has no body"})
	}
	return true
}

// Err returns the first problem found, or nil
func (v *ValidatorVisitor) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return v.errors[0]
}

// StatisticsVisitor measures the size of a syntax tree. Tokens are not
// counted, so layout and punctuation do not change the numbers.
type StatisticsVisitor struct {
	NodeCounts map[NodeType]int
	TotalNodes int
	MaxDepth   int
	curDepth   int
}

// NewStatisticsVisitor creates an empty statistics visitor
func NewStatisticsVisitor() *StatisticsVisitor {
	return &StatisticsVisitor{
		NodeCounts: make(map[NodeType]int),
	}
}

// Visit implements the Visitor interface
func (v *StatisticsVisitor) Visit(node *Node) bool {
	if node.Type == NodeToken {
		return false
	}
	v.TotalNodes++
	v.NodeCounts[node.Type]++

	v.curDepth++
	if v.curDepth > v.MaxDepth {
		v.MaxDepth = v.curDepth
	}
	for _, child := range node.Children {
		child.Accept(v)
	}
	v.curDepth--

	// children were visited above
	return false
}
