package parser

import (
	"context"
	"errors"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is returned when the source does not parse cleanly
var ErrSyntax = errors.New("syntax errors found in source code")

// Parser provides Python code parsing capabilities using tree-sitter.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with Python grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult represents the result of parsing Python code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Parse parses Python source code and returns the CST. Sources containing
// error or missing nodes are rejected with an error wrapping ErrSyntax.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		if at := p.firstError(rootNode); at != nil {
			point := at.StartPoint()
			return nil, fmt.Errorf("%w: line %d, column %d", ErrSyntax, point.Row+1, point.Column)
		}
		return nil, ErrSyntax
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
	}, nil
}

// ParseFile parses a Python file from a reader
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return p.Parse(ctx, source)
}

// ParseAST parses source and builds the owned AST. file is recorded in
// node locations.
func (p *Parser) ParseAST(ctx context.Context, file string, source []byte) (*Node, error) {
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return NewASTBuilder(result.SourceCode).WithFile(file).Build(result.Tree)
}

// WalkTree traverses the CST and calls the visitor function for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// HasSyntaxErrors checks if the parsed tree contains any syntax errors
func (p *Parser) HasSyntaxErrors(node *sitter.Node) bool {
	return p.firstError(node) != nil
}

var errStopWalk = errors.New("stop")

// firstError returns the first error or missing node in document order
func (p *Parser) firstError(node *sitter.Node) *sitter.Node {
	var found *sitter.Node

	_ = p.WalkTree(node, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}
