package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/analyzer"
	"github.com/Mikefromtheback/plagiat-check/internal/parser"
	"github.com/Mikefromtheback/plagiat-check/internal/version"
)

// CompareServiceImpl implements the CompareService interface
type CompareServiceImpl struct {
	sources  domain.SourceReader
	executor domain.ParallelExecutor
	progress domain.ProgressManager
	logger   *slog.Logger
	now      func() time.Time
}

// CompareServiceOption configures a CompareServiceImpl
type CompareServiceOption func(*CompareServiceImpl)

// WithSourceReader replaces the file system reader
func WithSourceReader(sources domain.SourceReader) CompareServiceOption {
	return func(s *CompareServiceImpl) { s.sources = sources }
}

// WithParallelExecutor replaces the default executor
func WithParallelExecutor(executor domain.ParallelExecutor) CompareServiceOption {
	return func(s *CompareServiceImpl) { s.executor = executor }
}

// WithProgressManager reports per-pair progress to pm
func WithProgressManager(pm domain.ProgressManager) CompareServiceOption {
	return func(s *CompareServiceImpl) { s.progress = pm }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) CompareServiceOption {
	return func(s *CompareServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCompareService creates a new compare service
func NewCompareService(opts ...CompareServiceOption) *CompareServiceImpl {
	s := &CompareServiceImpl{
		sources:  NewFileReader(),
		executor: NewParallelExecutor(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compare scores every pair of req.Pairs. Results are returned in input
// order regardless of the number of workers. In fail mode the error of the
// earliest failing pair is returned and no response is produced.
func (s *CompareServiceImpl) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	workers := req.Workers
	if workers < 1 {
		workers = domain.DefaultWorkers
	}
	mode := req.ErrorMode
	if mode == "" {
		mode = domain.DefaultErrorMode
	}

	pairs := req.Pairs
	results := make([]domain.PairResult, len(pairs))
	failures := make([]error, len(pairs))

	s.logger.Info("comparing pairs", "pairs", len(pairs), "workers", workers, "on_error", string(mode))

	if s.progress != nil && req.ShowProgress {
		s.progress.Initialize(len(pairs))
		s.progress.Start()
		defer s.progress.Close()
	}

	// In fail mode a failing pair does not cancel its siblings. Pairs after
	// the earliest known failure are skipped and pairs before it run to
	// completion, so the reported failure is the earliest one in input order.
	var failedAt atomic.Int64
	failedAt.Store(int64(len(pairs)))

	s.executor.SetMaxConcurrency(workers)
	err := s.executor.Execute(ctx, len(pairs), func(ctx context.Context, i int) error {
		if mode == domain.ErrorModeFail && int64(i) > failedAt.Load() {
			return nil
		}
		result, err := s.ComparePair(ctx, pairs[i], req.Canonicalize)
		result.Index = i
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("pair failed", "line", pairs[i].Line, "path_a", pairs[i].PathA, "path_b", pairs[i].PathB, "error", err)
			failures[i] = err
			result.Error = err.Error()
			if mode == domain.ErrorModeFail {
				lowerFailure(&failedAt, i)
			}
		}
		results[i] = result
		if s.progress != nil && req.ShowProgress {
			s.progress.Increment()
		}
		return nil
	})

	if mode == domain.ErrorModeFail {
		for _, failure := range failures {
			if failure != nil {
				err = failure
				break
			}
		}
	}

	if s.progress != nil && req.ShowProgress {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		return nil, err
	}

	summary := domain.CompareSummary{TotalPairs: len(pairs)}
	for _, r := range results {
		if r.Failed() {
			summary.Failed++
		} else {
			summary.Compared++
		}
	}

	s.logger.Info("comparison finished", "compared", summary.Compared, "failed", summary.Failed)

	return &domain.CompareResponse{
		Results:     results,
		Summary:     summary,
		GeneratedAt: s.now().Format(time.RFC3339),
		Version:     version.Short(),
	}, nil
}

// lowerFailure records index i as failed unless an earlier failure is known
func lowerFailure(failedAt *atomic.Int64, i int) {
	for {
		current := failedAt.Load()
		if int64(i) >= current || failedAt.CompareAndSwap(current, int64(i)) {
			return
		}
	}
}

// ComparePair canonicalizes both files of pair independently and scores the
// two canonical strings.
func (s *CompareServiceImpl) ComparePair(ctx context.Context, pair domain.FilePair, opts domain.CanonicalizeOptions) (domain.PairResult, error) {
	result := domain.PairResult{
		Line:  pair.Line,
		PathA: pair.PathA,
		PathB: pair.PathB,
	}

	a, err := s.canonicalString(ctx, pair.PathA, opts)
	if err != nil {
		return result, err
	}

	b := a
	if pair.PathB != pair.PathA {
		b, err = s.canonicalString(ctx, pair.PathB, opts)
		if err != nil {
			return result, err
		}
	}

	similarity := analyzer.Compare(a.text, b.text)
	result.Score = similarity.Score
	result.Distance = similarity.Distance
	result.LengthA = similarity.LengthA
	result.LengthB = similarity.LengthB

	s.logger.Debug("pair scored", "line", pair.Line, "score", result.Score, "distance", result.Distance)
	return result, nil
}

// Canonicalize returns the canonical form of the file at path
func (s *CompareServiceImpl) Canonicalize(ctx context.Context, path string, opts domain.CanonicalizeOptions) (*domain.CanonicalForm, error) {
	c, err := s.canonicalString(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return &domain.CanonicalForm{
		Path:      path,
		Canonical: c.text,
		Length:    utf8.RuneCountInString(c.text),
		Functions: c.functions,
		Names:     c.names,
		Nodes:     c.nodes,
		Depth:     c.depth,
	}, nil
}

type canonicalText struct {
	text      string
	functions int
	names     int
	nodes     int
	depth     int
}

// canonicalString reads, parses, canonicalizes and renders one file. Every
// call builds its own parser and canonicalizer so calls may run concurrently.
func (s *CompareServiceImpl) canonicalString(ctx context.Context, path string, opts domain.CanonicalizeOptions) (canonicalText, error) {
	if err := ctx.Err(); err != nil {
		return canonicalText{}, err
	}

	source, err := s.sources.ReadFile(path)
	if err != nil {
		return canonicalText{}, err
	}

	root, err := parser.New().ParseAST(ctx, path, source)
	if err != nil {
		if ctx.Err() != nil {
			return canonicalText{}, ctx.Err()
		}
		return canonicalText{}, domain.NewSyntaxError(path, err)
	}

	canonicalizer := analyzer.NewCanonicalizer(opts)
	root, err = canonicalizer.Canonicalize(root)
	if err != nil {
		var de domain.DomainError
		if errors.As(err, &de) {
			de.Message = fmt.Sprintf("%s: %s", path, de.Message)
			return canonicalText{}, de
		}
		return canonicalText{}, err
	}

	stats := parser.NewStatisticsVisitor()
	root.Accept(stats)

	return canonicalText{
		text:      parser.Render(root),
		functions: canonicalizer.Functions().Len(),
		names:     canonicalizer.Names().Len(),
		nodes:     stats.TotalNodes,
		depth:     stats.MaxDepth,
	}, nil
}
