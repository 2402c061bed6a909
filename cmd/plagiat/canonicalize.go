package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Mikefromtheback/plagiat-check/app"
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// CanonicalizeCommand represents the canonicalize command
type CanonicalizeCommand struct {
	noFunctions    bool
	noIdentifiers  bool
	keepDocstrings bool
	format         string
	output         string
}

// NewCanonicalizeCommand creates a new canonicalize command
func NewCanonicalizeCommand() *CanonicalizeCommand {
	return &CanonicalizeCommand{
		format: string(domain.OutputFormatText),
	}
}

// CreateCobraCommand creates the cobra command for printing canonical forms
func (c *CanonicalizeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canonicalize FILE...",
		Short: "Print the canonical form of Python files",
		Long: `Print the canonical rendering that plagiat compares.

With one file the canonical text is printed as is. With several files each
one is preceded by a "# path" header line.

Examples:
  # Show what a file is reduced to
  plagiat canonicalize solution.py

  # Keep the original identifiers, only rename functions and parameters
  plagiat canonicalize solution.py --no-identifiers

  # Machine readable output
  plagiat canonicalize a.py b.py --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runCanonicalize,
	}

	cmd.Flags().BoolVar(&c.noFunctions, service.FlagNoFunctions, false, "Keep function and parameter names")
	cmd.Flags().BoolVar(&c.noIdentifiers, service.FlagNoIdentifiers, false, "Keep identifier names")
	cmd.Flags().BoolVar(&c.keepDocstrings, service.FlagKeepDocstrings, false, "Keep leading function docstrings")
	cmd.Flags().StringVarP(&c.format, service.FlagFormat, "f", c.format, "Output format: text, json, yaml")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Write to a file instead of standard output")

	return cmd
}

// options converts the rewrite flags to domain options
func (c *CanonicalizeCommand) options() domain.CanonicalizeOptions {
	return domain.CanonicalizeOptions{
		NormalizeFunctions:   !c.noFunctions,
		NormalizeIdentifiers: !c.noIdentifiers,
		StripDocstrings:      !c.keepDocstrings,
	}
}

// runCanonicalize executes the canonicalize command
func (c *CanonicalizeCommand) runCanonicalize(cmd *cobra.Command, args []string) error {
	format, err := service.NewOutputFormatResolver().Parse(c.format)
	if err != nil {
		return err
	}
	configPath, _ := cmd.Flags().GetString(configFlagName)

	useCase := app.NewCanonicalizeUseCase(
		service.NewCompareService(service.WithLogger(slog.Default())),
		service.NewConfigurationLoader(),
		service.NewFileOutputWriter(cmd.ErrOrStderr()),
	)

	req := domain.CanonicalizeRequest{
		Paths:         args,
		Options:       c.options(),
		OutputFormat:  format,
		ConfigPath:    configPath,
		ExplicitFlags: GetExplicitFlags(cmd),
	}
	if c.output == "" || c.output == service.StdoutPath {
		req.OutputWriter = cmd.OutOrStdout()
	} else {
		req.OutputPath = c.output
	}

	_, err = useCase.Execute(cmd.Context(), req)
	return err
}

// NewCanonicalizeCmd creates and returns the canonicalize cobra command
func NewCanonicalizeCmd() *cobra.Command {
	return NewCanonicalizeCommand().CreateCobraCommand()
}
