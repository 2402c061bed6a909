package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Mikefromtheback/plagiat-check/app"
	"github.com/Mikefromtheback/plagiat-check/domain"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// DiffCommand represents the diff command
type DiffCommand struct {
	context        int
	noFunctions    bool
	noIdentifiers  bool
	keepDocstrings bool
}

// NewDiffCommand creates a new diff command
func NewDiffCommand() *DiffCommand {
	return &DiffCommand{context: app.DefaultDiffContext}
}

// CreateCobraCommand creates the cobra command for diffing canonical forms
func (d *DiffCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff FILE_A FILE_B",
		Short: "Show where two files differ after canonicalization",
		Long: `Print a unified diff of the canonical forms of two Python files,
followed by their similarity score and edit distance.

No diff lines are printed when the files are equal up to naming.

Examples:
  plagiat diff alice.py bob.py
  plagiat diff alice.py bob.py -U 0`,
		Args: cobra.ExactArgs(2),
		RunE: d.runDiff,
	}

	cmd.Flags().IntVarP(&d.context, "context", "U", d.context, "Unchanged lines shown around each change")
	cmd.Flags().BoolVar(&d.noFunctions, service.FlagNoFunctions, false, "Keep function and parameter names")
	cmd.Flags().BoolVar(&d.noIdentifiers, service.FlagNoIdentifiers, false, "Keep identifier names")
	cmd.Flags().BoolVar(&d.keepDocstrings, service.FlagKeepDocstrings, false, "Keep leading function docstrings")

	return cmd
}

// runDiff executes the diff command
func (d *DiffCommand) runDiff(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString(configFlagName)

	useCase := app.NewDiffUseCase(
		service.NewCompareService(service.WithLogger(slog.Default())),
		service.NewConfigurationLoader(),
	)

	_, err := useCase.Execute(cmd.Context(), domain.DiffRequest{
		PathA: args[0],
		PathB: args[1],
		Options: domain.CanonicalizeOptions{
			NormalizeFunctions:   !d.noFunctions,
			NormalizeIdentifiers: !d.noIdentifiers,
			StripDocstrings:      !d.keepDocstrings,
		},
		Context:       d.context,
		OutputWriter:  cmd.OutOrStdout(),
		ConfigPath:    configPath,
		ExplicitFlags: GetExplicitFlags(cmd),
	})
	return err
}

// NewDiffCmd creates and returns the diff cobra command
func NewDiffCmd() *cobra.Command {
	return NewDiffCommand().CreateCobraCommand()
}
