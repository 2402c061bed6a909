package app

import (
	"context"
	"fmt"
	"io"

	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// CanonicalizeUseCase prints the canonical form of source files
type CanonicalizeUseCase struct {
	service      domain.CompareService
	configLoader domain.CompareConfigurationLoader
	output       domain.ReportWriter
}

// NewCanonicalizeUseCase creates a new canonicalize use case. configLoader
// may be nil to use req.Options as given.
func NewCanonicalizeUseCase(
	service domain.CompareService,
	configLoader domain.CompareConfigurationLoader,
	output domain.ReportWriter,
) *CanonicalizeUseCase {
	return &CanonicalizeUseCase{
		service:      service,
		configLoader: configLoader,
		output:       output,
	}
}

// Execute canonicalizes every file of req.Paths in order. The first failing
// file aborts the run before anything is written.
func (uc *CanonicalizeUseCase) Execute(ctx context.Context, req domain.CanonicalizeRequest) ([]*domain.CanonicalForm, error) {
	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no files specified", nil)
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return nil, domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	opts, err := resolveCanonicalizeOptions(uc.configLoader, req.Options, req.ConfigPath, req.ExplicitFlags)
	if err != nil {
		return nil, err
	}

	forms := make([]*domain.CanonicalForm, 0, len(req.Paths))
	for _, path := range req.Paths {
		form, err := uc.service.Canonicalize(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}

	format := req.OutputFormat
	if format == "" {
		format = domain.OutputFormatText
	}
	err = uc.output.Write(req.OutputWriter, req.OutputPath, format, func(w io.Writer) error {
		return service.FormatCanonicalForms(forms, format, w)
	})
	if err != nil {
		return nil, err
	}

	return forms, nil
}

// resolveCanonicalizeOptions merges explicitly set rewrite flags over the
// project configuration
func resolveCanonicalizeOptions(loader domain.CompareConfigurationLoader, opts domain.CanonicalizeOptions, configPath string, flags map[string]bool) (domain.CanonicalizeOptions, error) {
	merged, err := mergeWithConfig(loader, domain.CompareRequest{
		Canonicalize:  opts,
		ConfigPath:    configPath,
		ExplicitFlags: flags,
	})
	if err != nil {
		return opts, fmt.Errorf("failed to resolve options: %w", err)
	}
	return merged.Canonicalize, nil
}
