package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mikefromtheback/plagiat-check/app"
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	format         string
	workers        int
	onError        string
	skipBlankLines bool
	relativeToList bool
	include        []string
	exclude        []string
	noProgress     bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		format:         string(domain.DefaultOutputFormat),
		workers:        domain.DefaultWorkers,
		onError:        string(domain.DefaultErrorMode),
		skipBlankLines: domain.DefaultSkipBlankLines,
	}
}

// CreateCobraCommand creates the cobra command for batch comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare LIST OUT",
		Short: "Score every pair of files in a pair list",
		Long: `Score every pair of Python files listed in LIST and write the results to OUT.

Each line of LIST holds two whitespace-separated paths. The whole list is
validated before any file is parsed. OUT receives one score per line in the
order of LIST; use "-" to write to standard output.

The output format is taken from --format, or inferred from the extension of
OUT (.json, .yaml, .csv), or read from the configuration file.

Examples:
  # Plain scores, one per line
  plagiat compare pairs.txt scores.txt

  # JSON report with distances and lengths, using 8 workers
  plagiat compare pairs.txt report.json -j 8

  # Keep going past unreadable files; their score is nan
  plagiat compare pairs.txt - --on-error record`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	c.addFlags(cmd)
	return cmd
}

// addFlags registers the comparison flags on cmd
func (c *CompareCommand) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.format, service.FlagFormat, "f", c.format, "Output format: text, json, yaml, csv, table")
	cmd.Flags().IntVarP(&c.workers, service.FlagWorkers, "j", c.workers, "Number of pairs compared concurrently")
	cmd.Flags().StringVar(&c.onError, service.FlagOnError, c.onError, "On a failing pair: fail (abort) or record (score nan)")
	cmd.Flags().BoolVar(&c.skipBlankLines, service.FlagSkipBlankLines, c.skipBlankLines, "Ignore blank lines in the pair list")
	cmd.Flags().BoolVar(&c.relativeToList, service.FlagRelativeToList, c.relativeToList, "Resolve relative paths against the pair list's directory")
	cmd.Flags().StringSliceVar(&c.include, service.FlagInclude, c.include, "Glob patterns every listed path must match")
	cmd.Flags().StringSliceVar(&c.exclude, service.FlagExclude, c.exclude, "Glob patterns no listed path may match")
	cmd.Flags().BoolVar(&c.noProgress, service.FlagNoProgress, c.noProgress, "Disable the progress bar")
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	listPath, outPath := args[0], args[1]
	explicit := GetExplicitFlags(cmd)
	configPath, _ := cmd.Flags().GetString(configFlagName)

	configLoader := service.NewConfigurationLoader()
	req := c.buildRequest(cmd, listPath, outPath, configPath, explicit)

	// The format depends on the configured default, so resolve it after
	// loading the configuration the same way the use case will
	base, err := loadBaseRequest(configLoader, configPath)
	if err != nil {
		return err
	}
	format, err := service.NewOutputFormatResolver().Determine(c.format, explicit[service.FlagFormat], outPath, base.OutputFormat)
	if err != nil {
		return err
	}
	req.OutputFormat = format
	req.ExplicitFlags[service.FlagFormat] = true

	progress := service.NewProgressManager()
	progress.SetWriter(cmd.ErrOrStderr())

	compareService := service.NewCompareService(
		service.WithLogger(slog.Default()),
		service.WithProgressManager(progress),
	)

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(compareService).
		WithPairReader(service.NewPairListReader()).
		WithFormatter(service.NewCompareFormatter()).
		WithConfigLoader(configLoader).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	response, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	if response.Summary.Failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d pairs could not be compared\n",
			response.Summary.Failed, response.Summary.TotalPairs)
	}
	return nil
}

// buildRequest creates the domain request from the flags
func (c *CompareCommand) buildRequest(cmd *cobra.Command, listPath, outPath, configPath string, explicit map[string]bool) domain.CompareRequest {
	req := domain.CompareRequest{
		ListPath:     listPath,
		ShowProgress: !c.noProgress,
		Canonicalize: domain.DefaultCanonicalizeOptions(),
		Workers:      c.workers,
		ErrorMode:    domain.ErrorMode(c.onError),
		PairList: domain.PairListOptions{
			SkipBlankLines:  c.skipBlankLines,
			RelativeToList:  c.relativeToList,
			IncludePatterns: c.include,
			ExcludePatterns: c.exclude,
		},
		ConfigPath:    configPath,
		ExplicitFlags: explicit,
	}

	if outPath == service.StdoutPath {
		req.OutputWriter = cmd.OutOrStdout()
	} else {
		req.OutputPath = filepath.Clean(outPath)
	}
	return req
}

// loadBaseRequest loads the configuration the use case will merge with
func loadBaseRequest(loader domain.CompareConfigurationLoader, configPath string) (*domain.CompareRequest, error) {
	if configPath == "" {
		return loader.LoadDefaultConfig(), nil
	}
	return loader.LoadConfig(configPath)
}
