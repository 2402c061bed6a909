package app

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/analyzer"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// DefaultDiffContext is the number of unchanged lines around each hunk
const DefaultDiffContext = 3

// DiffUseCase shows where two files differ once naming is erased
type DiffUseCase struct {
	service      domain.CompareService
	configLoader domain.CompareConfigurationLoader
}

// NewDiffUseCase creates a new diff use case
func NewDiffUseCase(service domain.CompareService, configLoader domain.CompareConfigurationLoader) *DiffUseCase {
	return &DiffUseCase{service: service, configLoader: configLoader}
}

// Execute canonicalizes both files, writes a unified diff of the canonical
// strings followed by the similarity score, and returns both.
func (uc *DiffUseCase) Execute(ctx context.Context, req domain.DiffRequest) (*domain.DiffResult, error) {
	if req.PathA == "" || req.PathB == "" {
		return nil, domain.NewInvalidInputError("two files are required", nil)
	}
	if req.Context < 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("context must not be negative, got %d", req.Context), nil)
	}

	opts, err := resolveCanonicalizeOptions(uc.configLoader, req.Options, req.ConfigPath, req.ExplicitFlags)
	if err != nil {
		return nil, err
	}

	a, err := uc.service.Canonicalize(ctx, req.PathA, opts)
	if err != nil {
		return nil, err
	}
	b, err := uc.service.Canonicalize(ctx, req.PathB, opts)
	if err != nil {
		return nil, err
	}

	diff, err := UnifiedDiff(a, b, req.Context)
	if err != nil {
		return nil, domain.NewOutputError("failed to compute diff", err)
	}

	similarity := analyzer.Compare(a.Canonical, b.Canonical)
	result := &domain.DiffResult{
		Pair: domain.PairResult{
			PathA:    req.PathA,
			PathB:    req.PathB,
			Score:    similarity.Score,
			Distance: similarity.Distance,
			LengthA:  similarity.LengthA,
			LengthB:  similarity.LengthB,
		},
		Diff: diff,
	}

	if req.OutputWriter != nil {
		if _, err := fmt.Fprintf(req.OutputWriter, "%ssimilarity: %s (distance %d)\n",
			diff, service.FormatScore(similarity.Score), similarity.Distance); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}

	return result, nil
}

// UnifiedDiff returns the unified diff of two canonical forms, or "" when
// they are equal.
func UnifiedDiff(a, b *domain.CanonicalForm, contextLines int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        canonicalLines(a.Canonical),
		B:        canonicalLines(b.Canonical),
		FromFile: a.Path,
		ToFile:   b.Path,
		Context:  contextLines,
	})
}

// canonicalLines splits a canonical string into newline-terminated lines
func canonicalLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(s)
}
