package app

import (
	"context"
	"fmt"
	"io"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// CompareUseCase orchestrates the batch comparison workflow: configuration,
// pair list validation, scoring and output.
type CompareUseCase struct {
	service      domain.CompareService
	pairReader   domain.PairListReader
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
	output       domain.ReportWriter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.CompareService,
	pairReader domain.PairListReader,
	formatter domain.CompareOutputFormatter,
	configLoader domain.CompareConfigurationLoader,
	output domain.ReportWriter,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		pairReader:   pairReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       output,
	}
}

// Execute runs the whole batch. The pair list is validated completely before
// any source file is parsed, and nothing is written when the batch fails.
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, err
	}

	if err := validateOptions(finalReq); err != nil {
		return nil, domain.NewInvalidInputError("invalid options", err)
	}

	if len(finalReq.Pairs) == 0 {
		pairs, err := uc.pairReader.ReadPairs(finalReq.ListPath, finalReq.PairList)
		if err != nil {
			return nil, err
		}
		finalReq.Pairs = pairs
	}

	response, err := uc.service.Compare(ctx, finalReq)
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}

	err = uc.output.Write(finalReq.OutputWriter, finalReq.OutputPath, finalReq.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// validateRequest checks the parts of the request that only the caller can
// supply
func (uc *CompareUseCase) validateRequest(req domain.CompareRequest) error {
	if req.ListPath == "" && len(req.Pairs) == 0 {
		return fmt.Errorf("no pair list specified")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// validateOptions checks the merged request
func validateOptions(req domain.CompareRequest) error {
	if req.Workers < 1 || req.Workers > domain.MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", domain.MaxWorkers, req.Workers)
	}

	switch req.ErrorMode {
	case domain.ErrorModeFail, domain.ErrorModeRecord:
	default:
		return fmt.Errorf("unsupported error mode: %s", req.ErrorMode)
	}

	for _, f := range domain.SupportedOutputFormats {
		if f == req.OutputFormat {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CompareUseCase) loadAndMergeConfig(req domain.CompareRequest) (domain.CompareRequest, error) {
	return mergeWithConfig(uc.configLoader, req)
}

func mergeWithConfig(loader domain.CompareConfigurationLoader, req domain.CompareRequest) (domain.CompareRequest, error) {
	if loader == nil {
		return req, nil
	}

	var configReq *domain.CompareRequest
	if req.ConfigPath != "" {
		var err error
		configReq, err = loader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, err
		}
	} else {
		configReq = loader.LoadDefaultConfig()
	}

	if configReq == nil {
		return req, nil
	}

	// Request takes precedence for explicitly set flags
	return *loader.MergeConfig(configReq, &req), nil
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service      domain.CompareService
	pairReader   domain.PairListReader
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
	output       domain.ReportWriter
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithPairReader sets the pair list reader
func (b *CompareUseCaseBuilder) WithPairReader(reader domain.PairListReader) *CompareUseCaseBuilder {
	b.pairReader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CompareUseCaseBuilder) WithConfigLoader(loader domain.CompareConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = loader
	return b
}

// WithOutputWriter sets the report writer
func (b *CompareUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.pairReader == nil {
		return nil, fmt.Errorf("pair list reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.output == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	// ConfigLoader is optional - config loading is skipped when nil
	return NewCompareUseCase(b.service, b.pairReader, b.formatter, b.configLoader, b.output), nil
}
