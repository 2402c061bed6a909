package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsVisitor(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		total     int
		depth     int
		functions int
	}{
		{
			name:   "empty module",
			source: "",
			total:  1,
			depth:  1,
		},
		{
			name:   "single assignment",
			source: "x = 1\n",
			total:  5,
			depth:  4,
		},
		{
			name:      "function",
			source:    "def f(a):\n    return a\n",
			total:     8,
			depth:     5,
			functions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewStatisticsVisitor()
			buildAST(t, tt.source).Accept(stats)

			assert.Equal(t, tt.total, stats.TotalNodes)
			assert.Equal(t, tt.depth, stats.MaxDepth)
			assert.Equal(t, tt.functions, stats.NodeCounts[NodeFunctionDef])
			assert.Equal(t, 0, stats.NodeCounts[NodeToken])
		})
	}
}

func TestStatisticsVisitor_IgnoresLayout(t *testing.T) {
	compact := NewStatisticsVisitor()
	buildAST(t, "def f(a): return (a+1)\n").Accept(compact)

	spread := NewStatisticsVisitor()
	buildAST(t, "def f(a):\n    # comment\n    return (a + 1)\n").Accept(spread)

	assert.Equal(t, compact.TotalNodes, spread.TotalNodes)
	assert.Equal(t, compact.MaxDepth, spread.MaxDepth)
}

func TestValidatorVisitor(t *testing.T) {
	root := buildAST(t, "def f(a):\n    return a\n")

	validator := NewValidatorVisitor()
	root.Accept(validator)
	require.NoError(t, validator.Err())

	fn := root.FindByType(NodeFunctionDef)[0]
	for i, c := range fn.Children {
		if c.Field == "body" {
			fn.RemoveChild(i)
			break
		}
	}

	validator = NewValidatorVisitor()
	root.Accept(validator)
	err := validator.Err()
	require.Error(t, err)

	var structural *StructureError
	require.ErrorAs(t, err, &structural)
	assert.Same(t, fn, structural.Node)
	assert.Equal(t, "function has no body", structural.Reason)
}
