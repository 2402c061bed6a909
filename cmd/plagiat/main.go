package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mikefromtheback/plagiat-check/internal/version"
	"github.com/Mikefromtheback/plagiat-check/service"
)

// Persistent flag names
const (
	configFlagName   = "config"
	verboseFlagName  = "verbose"
	logLevelFlagName = "log-level"
	logFileFlagName  = "log-file"
)

var rootCmd = newRootCmd()

// newRootCmd builds the root command. Without a subcommand it behaves like
// "compare LIST OUT".
func newRootCmd() *cobra.Command {
	compare := NewCompareCommand()

	cmd := &cobra.Command{
		Use:   "plagiat [LIST OUT]",
		Short: "Structural similarity checker for Python sources",
		Long: `plagiat scores how similar pairs of Python files are once naming is erased.

Both files of a pair are parsed, function names, parameters and identifiers
are renamed by order of appearance, leading docstrings are removed, and the
canonical renderings are compared by edit distance. A score of 1.0 means the
files differ only in naming, comments, docstrings and layout.

Examples:
  # Score every pair listed in pairs.txt and write one score per line
  plagiat pairs.txt scores.txt

  # Same, explicitly
  plagiat compare pairs.txt scores.txt --workers 4`,
		Version:       version.Short(),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 2 {
				return fmt.Errorf("expected LIST and OUT, got %d argument(s)", len(args))
			}
			return compare.runCompare(cmd, args)
		},
	}

	cmd.PersistentFlags().StringP(configFlagName, "c", "", "Configuration file path (TOML, YAML or JSON)")
	cmd.PersistentFlags().BoolP(verboseFlagName, "v", false, "Enable verbose output")
	cmd.PersistentFlags().String(logLevelFlagName, "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String(logFileFlagName, "", "Write logs to a rotating file instead of stderr")

	compare.addFlags(cmd)

	cmd.AddCommand(compare.CreateCobraCommand())
	cmd.AddCommand(NewCanonicalizeCmd())
	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewInitCmd())

	return cmd
}

// reportError prints err and, for known categories, how to recover
func reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	fmt.Fprintf(w, "Error: %v\n", err)

	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
