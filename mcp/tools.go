package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all plagiat MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	s.AddTool(mcp.NewTool("compare_files",
		mcp.WithDescription("Score the structural similarity of two Python files after erasing function, parameter and identifier names and docstrings. 1.0 means identical up to naming."),
		mcp.WithString("path_a",
			mcp.Required(),
			mcp.Description("Path to the first Python file")),
		mcp.WithString("path_b",
			mcp.Required(),
			mcp.Description("Path to the second Python file")),
	), h.HandleCompareFiles)

	s.AddTool(mcp.NewTool("compare_pairs",
		mcp.WithDescription("Score every pair of a pair list file (two whitespace-separated paths per line). Results keep the order of the list."),
		mcp.WithString("list_path",
			mcp.Required(),
			mcp.Description("Path to the pair list file")),
		mcp.WithNumber("workers",
			mcp.Description("Number of pairs compared concurrently (default: from configuration)")),
		mcp.WithString("on_error",
			mcp.Enum("fail", "record"),
			mcp.Description("fail aborts on the first failing pair, record marks it and continues (default: fail)")),
	), h.HandleComparePairs)

	s.AddTool(mcp.NewTool("canonicalize_file",
		mcp.WithDescription("Return the canonical form of a Python file, the text that compare_files measures"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the Python file")),
	), h.HandleCanonicalizeFile)
}
