package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "", nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareFiles handles the compare_files tool
func (h *HandlerSet) HandleCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	pathA, errResult := requirePath(args, "path_a")
	if errResult != nil {
		return errResult, nil
	}
	pathB, errResult := requirePath(args, "path_b")
	if errResult != nil {
		return errResult, nil
	}

	result, err := h.deps.compare.ComparePair(ctx, domain.FilePair{PathA: pathA, PathB: pathB}, h.deps.CanonicalizeOptions())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	return jsonResult(result)
}

// HandleComparePairs handles the compare_pairs tool
func (h *HandlerSet) HandleComparePairs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	listPath, errResult := requirePath(args, "list_path")
	if errResult != nil {
		return errResult, nil
	}

	// JSON output and no progress bar regardless of configuration
	explicit := map[string]bool{
		service.FlagFormat:     true,
		service.FlagNoProgress: true,
	}
	req := domain.CompareRequest{
		ListPath:     listPath,
		OutputFormat: domain.OutputFormatJSON,
		ShowProgress: false,
		Canonicalize: h.deps.CanonicalizeOptions(),
		Workers:      h.deps.Config().Compare.Workers,
		ErrorMode:    domain.ErrorMode(h.deps.Config().Compare.OnError),
		PairList:     h.deps.Config().PairListOptions(),
		ConfigPath:   h.deps.ConfigPath(),
	}

	if workers, ok := args["workers"].(float64); ok {
		if workers < 1 || workers > domain.MaxWorkers || workers != float64(int(workers)) {
			return mcp.NewToolResultError(fmt.Sprintf("workers must be an integer between 1 and %d", domain.MaxWorkers)), nil
		}
		req.Workers = int(workers)
		explicit[service.FlagWorkers] = true
	}
	if onError, ok := args["on_error"].(string); ok {
		switch domain.ErrorMode(onError) {
		case domain.ErrorModeFail, domain.ErrorModeRecord:
		default:
			return mcp.NewToolResultError(fmt.Sprintf("on_error must be %q or %q", domain.ErrorModeFail, domain.ErrorModeRecord)), nil
		}
		req.ErrorMode = domain.ErrorMode(onError)
		explicit[service.FlagOnError] = true
	}
	req.ExplicitFlags = explicit

	useCase, err := h.deps.BuildCompareUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparator: %v", err)), nil
	}

	var buf bytes.Buffer
	req.OutputWriter = &buf
	if _, err := useCase.Execute(ctx, req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// HandleCanonicalizeFile handles the canonicalize_file tool
func (h *HandlerSet) HandleCanonicalizeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, errResult := requirePath(args, "path")
	if errResult != nil {
		return errResult, nil
	}

	form, err := h.deps.compare.Canonicalize(ctx, path, h.deps.CanonicalizeOptions())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("canonicalization failed: %v", err)), nil
	}

	return mcp.NewToolResultText(form.Canonical), nil
}

// requirePath extracts a string argument naming an existing file
func requirePath(args map[string]interface{}, name string) (string, *mcp.CallToolResult) {
	path, ok := args[name].(string)
	if !ok || path == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s parameter is required and must be a string", name))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	return path, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
