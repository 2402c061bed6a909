// Package parser turns Python source into a small syntax tree and renders
// that tree back to canonical text.
//
// Parsing uses the tree-sitter Python grammar. A source whose tree contains
// error or missing nodes is rejected with ErrSyntax. The resulting Node tree
// classifies identifiers as renameable references (NodeName), parameter
// declarations (NodeArg) or inert names (NodeIdentifier).
//
// Basic usage:
//
//	root, err := parser.New().ParseAST(ctx, "a.py", source)
//	if err != nil {
//	    // Handle parsing error
//	}
//	fmt.Println(parser.Render(root))
package parser
