package service

import (
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/internal/config"
)

// Flag names whose explicit use overrides configuration values
const (
	FlagFormat         = "format"
	FlagWorkers        = "workers"
	FlagOnError        = "on-error"
	FlagSkipBlankLines = "skip-blank-lines"
	FlagRelativeToList = "relative-to-list"
	FlagInclude        = "include"
	FlagExclude        = "exclude"
	FlagNoProgress     = "no-progress"
	FlagNoFunctions    = "no-functions"
	FlagNoIdentifiers  = "no-identifiers"
	FlagKeepDocstrings = "keep-docstrings"
)

// ConfigurationLoaderImpl implements the CompareConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// discovers .plagiat.toml or pyproject.toml from the working directory.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CompareRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	req := RequestFromConfig(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig discovers a project configuration, falling back to the
// built-in defaults when none loads
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CompareRequest {
	if req, err := c.LoadConfig(""); err == nil {
		return req
	}
	return RequestFromConfig(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file. Values in override
// replace base values only for flags the user set explicitly; inputs and
// destinations always come from override.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	flags := override.ExplicitFlags

	if override.ListPath != "" {
		merged.ListPath = override.ListPath
	}
	if len(override.Pairs) > 0 {
		merged.Pairs = override.Pairs
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.OutputFormat = config.Merge(base.OutputFormat, override.OutputFormat, FlagFormat, flags)
	merged.ShowProgress = config.Merge(base.ShowProgress, override.ShowProgress, FlagNoProgress, flags)
	merged.Workers = config.Merge(base.Workers, override.Workers, FlagWorkers, flags)
	merged.ErrorMode = config.Merge(base.ErrorMode, override.ErrorMode, FlagOnError, flags)

	merged.Canonicalize.NormalizeFunctions = config.Merge(base.Canonicalize.NormalizeFunctions,
		override.Canonicalize.NormalizeFunctions, FlagNoFunctions, flags)
	merged.Canonicalize.NormalizeIdentifiers = config.Merge(base.Canonicalize.NormalizeIdentifiers,
		override.Canonicalize.NormalizeIdentifiers, FlagNoIdentifiers, flags)
	merged.Canonicalize.StripDocstrings = config.Merge(base.Canonicalize.StripDocstrings,
		override.Canonicalize.StripDocstrings, FlagKeepDocstrings, flags)

	merged.PairList.SkipBlankLines = config.Merge(base.PairList.SkipBlankLines,
		override.PairList.SkipBlankLines, FlagSkipBlankLines, flags)
	merged.PairList.RelativeToList = config.Merge(base.PairList.RelativeToList,
		override.PairList.RelativeToList, FlagRelativeToList, flags)
	merged.PairList.IncludePatterns = config.MergeStringSlice(base.PairList.IncludePatterns,
		override.PairList.IncludePatterns, FlagInclude, flags)
	merged.PairList.ExcludePatterns = config.MergeStringSlice(base.PairList.ExcludePatterns,
		override.PairList.ExcludePatterns, FlagExclude, flags)

	merged.ExplicitFlags = flags
	return &merged
}

// RequestFromConfig converts internal config to a domain request
func RequestFromConfig(cfg *config.Config) *domain.CompareRequest {
	return &domain.CompareRequest{
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ShowProgress: cfg.Output.ShowProgress,
		Canonicalize: cfg.CanonicalizeOptions(),
		Workers:      cfg.Compare.Workers,
		ErrorMode:    domain.ErrorMode(cfg.Compare.OnError),
		PairList:     cfg.PairListOptions(),
	}
}
