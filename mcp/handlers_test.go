package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/mcp"
	"github.com/Mikefromtheback/plagiat-check/service"
)

type want struct {
	isError      bool
	expectPrefix string
	check        func(t *testing.T, text string)
}

func setupConfig(t *testing.T) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "plagiat.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))
	return configFile
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// sources writes a renamed copy pair, a different file and a broken file
func sources(t *testing.T) (dir, a, b, c, broken string) {
	t.Helper()
	dir = t.TempDir()
	a = writeSource(t, dir, "a.py", "def foo(x):\n    return x + 1\n")
	b = writeSource(t, dir, "b.py", "def bar(y):\n    \"\"\"Add one.\"\"\"\n    return y + 1\n")
	c = writeSource(t, dir, "c.py", "def baz(z):\n    return z * 2\n")
	broken = writeSource(t, dir, "broken.py", "def f(:\n")
	return dir, a, b, c, broken
}

func runToolTest(
	t *testing.T,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()
	deps := mcp.NewTestDependencies(service.NewCompareService(), nil, setupConfig(t))
	h := mcp.NewHandlerSet(deps)

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

func assertResult(t *testing.T, res *mcplib.CallToolResult, w want) {
	t.Helper()
	require.Equal(t, w.isError, res.IsError)
	require.NotEmpty(t, res.Content)

	text := mcplib.GetTextFromContent(res.Content[0])
	if w.expectPrefix != "" {
		assert.True(t, strings.HasPrefix(text, w.expectPrefix), "text %q does not start with %q", text, w.expectPrefix)
	}
	if w.check != nil {
		w.check(t, text)
	}
}

func TestHandleCompareFiles(t *testing.T) {
	_, a, b, c, broken := sources(t)

	tests := map[string]struct {
		arguments interface{}
		want      want
	}{
		"invalid_arguments_format": {
			arguments: "not-a-map",
			want:      want{isError: true, expectPrefix: "invalid arguments format"},
		},
		"path_b_missing": {
			arguments: map[string]interface{}{"path_a": a},
			want:      want{isError: true, expectPrefix: "path_b parameter is required"},
		},
		"path_not_exist": {
			arguments: map[string]interface{}{"path_a": a, "path_b": "/non/existing/file.py"},
			want:      want{isError: true, expectPrefix: "path does not exist"},
		},
		"renamed_copy": {
			arguments: map[string]interface{}{"path_a": a, "path_b": b},
			want: want{check: func(t *testing.T, text string) {
				var result domain.PairResult
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Equal(t, 1.0, result.Score)
				assert.Equal(t, 0, result.Distance)
			}},
		},
		"different": {
			arguments: map[string]interface{}{"path_a": a, "path_b": c},
			want: want{check: func(t *testing.T, text string) {
				var result domain.PairResult
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Less(t, result.Score, 1.0)
				assert.Equal(t, 2, result.Distance)
			}},
		},
		"syntax_error": {
			arguments: map[string]interface{}{"path_a": a, "path_b": broken},
			want:      want{isError: true, expectPrefix: "comparison failed"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, tc.arguments, (*mcp.HandlerSet).HandleCompareFiles)
			assertResult(t, res, tc.want)
		})
	}
}

func TestHandleComparePairs(t *testing.T) {
	dir, a, b, c, broken := sources(t)
	list := writeSource(t, dir, "pairs.txt", a+" "+b+"\n"+a+" "+c+"\n"+b+" "+b+"\n")
	mixed := writeSource(t, dir, "mixed.txt", a+" "+b+"\n"+a+" "+broken+"\n")
	malformed := writeSource(t, dir, "malformed.txt", a+"\n")

	tests := map[string]struct {
		arguments interface{}
		want      want
	}{
		"list_missing": {
			arguments: map[string]interface{}{},
			want:      want{isError: true, expectPrefix: "list_path parameter is required"},
		},
		"ordered_results": {
			arguments: map[string]interface{}{"list_path": list, "workers": float64(3)},
			want: want{check: func(t *testing.T, text string) {
				var response domain.CompareResponse
				require.NoError(t, json.Unmarshal([]byte(text), &response))
				require.Len(t, response.Results, 3)
				assert.Equal(t, 1.0, response.Results[0].Score)
				assert.Less(t, response.Results[1].Score, 1.0)
				assert.Equal(t, 1.0, response.Results[2].Score)
				assert.Equal(t, 3, response.Summary.Compared)
			}},
		},
		"fail_mode": {
			arguments: map[string]interface{}{"list_path": mixed},
			want:      want{isError: true, expectPrefix: "comparison failed"},
		},
		"record_mode": {
			arguments: map[string]interface{}{"list_path": mixed, "on_error": "record"},
			want: want{check: func(t *testing.T, text string) {
				var response domain.CompareResponse
				require.NoError(t, json.Unmarshal([]byte(text), &response))
				require.Len(t, response.Results, 2)
				assert.False(t, response.Results[0].Failed())
				assert.True(t, response.Results[1].Failed())
				assert.Equal(t, 1, response.Summary.Failed)
			}},
		},
		"malformed_list": {
			arguments: map[string]interface{}{"list_path": malformed},
			want:      want{isError: true, expectPrefix: "[INPUT_FORMAT_ERROR] " + malformed + ":1"},
		},
		"invalid_workers": {
			arguments: map[string]interface{}{"list_path": list, "workers": float64(0)},
			want:      want{isError: true, expectPrefix: "workers must be"},
		},
		"invalid_on_error": {
			arguments: map[string]interface{}{"list_path": list, "on_error": "ignore"},
			want:      want{isError: true, expectPrefix: "on_error must be"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, tc.arguments, (*mcp.HandlerSet).HandleComparePairs)
			assertResult(t, res, tc.want)
		})
	}
}

func TestHandleCanonicalizeFile(t *testing.T) {
	_, _, b, _, broken := sources(t)

	tests := map[string]struct {
		arguments interface{}
		want      want
	}{
		"path_missing": {
			arguments: map[string]interface{}{},
			want:      want{isError: true, expectPrefix: "path parameter is required"},
		},
		"success": {
			arguments: map[string]interface{}{"path": b},
			want: want{check: func(t *testing.T, text string) {
				assert.Equal(t, "def function0(arg0):\n    return id_0 + 1", text)
			}},
		},
		"syntax_error": {
			arguments: map[string]interface{}{"path": broken},
			want:      want{isError: true, expectPrefix: "canonicalization failed"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, tc.arguments, (*mcp.HandlerSet).HandleCanonicalizeFile)
			assertResult(t, res, tc.want)
		})
	}
}

func TestRegisterTools(t *testing.T) {
	server := mcpserver.NewMCPServer("plagiat", "test", mcpserver.WithToolCapabilities(true))
	assert.NotPanics(t, func() {
		mcp.RegisterTools(server, nil)
	})
}
